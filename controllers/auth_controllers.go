package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/models"
	"github.com/restsoft-app/restsoft-pos/services"
	"github.com/restsoft-app/restsoft-pos/utils"
)

type AuthController struct {
	App *services.App
}

func NewAuthController(app *services.App) *AuthController {
	return &AuthController{App: app}
}

// ChooseRole -> which door the operator enters through
func (ac *AuthController) ChooseRole(c *gin.Context) {
	var body struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := ac.App.ChooseRole(body.Role); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Role selected", gin.H{"role": body.Role})
}

// finishSignIn runs the splash completion and mints the session token.
func (ac *AuthController) finishSignIn(c *gin.Context) {
	user, err := ac.App.FinishSplash()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	token, err := utils.GenerateToken(user.Name, user.Email, user.Role, user.BusinessName)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Signed in", gin.H{
		"token":          token,
		"user":           user,
		"splash_seconds": ac.App.SplashSeconds(),
	})
}

// Register -> admin sign-up, straight into a session
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := ac.App.RegisterAdmin(req); err != nil {
		respondServiceError(c, err)
		return
	}
	ac.finishSignIn(c)
}

// Login -> admin or employee depending on the chosen role
func (ac *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role := body.Role
	if role == "" {
		role = ac.App.ChosenRole()
	}

	var err error
	if role == models.RoleAdmin {
		err = ac.App.LoginAdmin(body.Email, body.Password)
	} else {
		err = ac.App.LoginEmployee(body.Email, body.Password)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ac.finishSignIn(c)
}

// Forgot -> issue a recovery code. No mail infrastructure exists, so
// the code comes back in the response for the operator to read.
func (ac *AuthController) Forgot(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	code, err := ac.App.RequestRecovery(body.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recovery code issued", gin.H{"code": code})
}

// Reset -> consume the recovery code and set the new password
func (ac *AuthController) Reset(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Code     string `json:"code" binding:"required"`
		Password string `json:"password" binding:"required"`
		Confirm  string `json:"confirm" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := ac.App.ResetPassword(body.Email, body.Code, body.Password, body.Confirm); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Password updated", nil)
}

func (ac *AuthController) Logout(c *gin.Context) {
	ac.App.Logout()
	utils.RespondJSON(c, http.StatusOK, "Signed out", nil)
}

// Me -> the session as the middleware decoded it
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := ac.App.CurrentUser()
	if !ok {
		utils.RespondJSON(c, http.StatusOK, "No active session", gin.H{
			"state": ac.App.GateState(),
		})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current session", gin.H{
		"state": ac.App.GateState(),
		"user":  user,
	})
}
