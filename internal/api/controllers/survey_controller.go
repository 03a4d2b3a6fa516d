package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"poisurvey/internal/models/request_models"
	"poisurvey/internal/models/response_models"
	"poisurvey/internal/services"
	"poisurvey/internal/survey"
	"poisurvey/pkg/middleware"
	"poisurvey/pkg/utils"
)

type SurveyController struct {
	surveyService services.SurveyServiceInterface
	tokens        *utils.SessionTokenIssuer
	secureCookie  bool
}

func NewSurveyController(
	surveyService services.SurveyServiceInterface,
	tokens *utils.SessionTokenIssuer,
	secureCookie bool,
) *SurveyController {
	return &SurveyController{
		surveyService: surveyService,
		tokens:        tokens,
		secureCookie:  secureCookie,
	}
}

// CreateSession godoc
// @Summary Start a survey session
// @Description Creates a session with a fresh respondent id and returns its token
// @Tags Survey
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /survey/sessions [post]
func (sc *SurveyController) CreateSession(c *gin.Context) {
	sess, err := sc.surveyService.CreateSession(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	id, err := uuid.Parse(sess.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	token, err := sc.tokens.CreateToken(id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, 0, "/", "", sc.secureCookie, true)
	utils.RespondSuccess(c, response_models.SessionResponse{
		Token: token,
		State: response_models.NewStateResponse(sess),
	}, "Survey session created")
}

// GetOptions godoc
// @Summary Form option lists
// @Tags Survey
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /survey/options [get]
func (sc *SurveyController) GetOptions(c *gin.Context) {
	utils.RespondSuccess(c, survey.AllOptions(), "")
}

func (sc *SurveyController) GetState(c *gin.Context) {
	sess, err := sc.surveyService.GetSession(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.NewStateResponse(sess), "")
}

// GiveConsent godoc
// @Summary Accept the data protection notice
// @Tags Survey
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /survey/consent [post]
func (sc *SurveyController) GiveConsent(c *gin.Context) {
	sess, err := sc.surveyService.GiveConsent(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.NewStateResponse(sess), "Consent recorded")
}

// SubmitIntake godoc
// @Summary Submit the respondent profile
// @Description Validates the profile and starts generating personalised descriptions
// @Tags Survey
// @Accept json
// @Produce json
// @Param request body request_models.IntakeRequest true "Profile"
// @Success 202 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /survey/intake [post]
func (sc *SurveyController) SubmitIntake(c *gin.Context) {
	var req request_models.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sess, err := sc.surveyService.SubmitProfile(c.Request.Context(), c.GetString("session_id"), req.ToProfile())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, utils.APIResponse{
		Status:  "success",
		Code:    http.StatusAccepted,
		Message: "Generating personalised descriptions",
		TraceID: c.GetString("trace_id"),
		Data:    response_models.NewStateResponse(sess),
	})
}

func (sc *SurveyController) GetProgress(c *gin.Context) {
	progress, err := sc.surveyService.Progress(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, progress, "")
}

// GetCurrentComparison godoc
// @Summary Current comparison step
// @Description Both descriptions of the current POI in their slots
// @Tags Survey
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /survey/comparisons/current [get]
func (sc *SurveyController) GetCurrentComparison(c *gin.Context) {
	view, err := sc.surveyService.CurrentComparison(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "")
}

// SubmitComparison godoc
// @Summary Answer one comparison step
// @Tags Survey
// @Accept json
// @Produce json
// @Param index path int true "Step index"
// @Param request body request_models.ComparisonRequest true "Answers"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /survey/comparisons/{index} [post]
func (sc *SurveyController) SubmitComparison(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid step index")
		return
	}

	var req request_models.ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sess, err := sc.surveyService.SubmitComparison(c.Request.Context(), c.GetString("session_id"), req.ToAnswers(index))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.NewStateResponse(sess), "Answers saved")
}

// SubmitFinal godoc
// @Summary Submit the closing questionnaire
// @Tags Survey
// @Accept json
// @Produce json
// @Param request body request_models.FinalRequest true "Closing answers"
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /survey/final [post]
func (sc *SurveyController) SubmitFinal(c *gin.Context) {
	var req request_models.FinalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sess, err := sc.surveyService.SubmitFinal(c.Request.Context(), c.GetString("session_id"), req.ToFeedback())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.NewStateResponse(sess), "Thank you for participating")
}

func (sc *SurveyController) Restart(c *gin.Context) {
	sess, err := sc.surveyService.Restart(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.NewStateResponse(sess), "Survey restarted")
}
