package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/services"
	"github.com/restsoft-app/restsoft-pos/utils"
)

// EmployeeController proxies the staff registry upstream and, when a
// password is supplied, provisions a local login for the new employee.
type EmployeeController struct {
	App    *services.App
	Client *backend.Client
}

func NewEmployeeController(app *services.App, client *backend.Client) *EmployeeController {
	return &EmployeeController{App: app, Client: client}
}

func (ec *EmployeeController) GetEmployees(c *gin.Context) {
	employees, err := ec.Client.ListEmployees(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", employees)
}

func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var body struct {
		backend.CreateEmployeeRequest
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id, err := ec.Client.CreateEmployee(c.Request.Context(), body.CreateEmployeeRequest)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// A password makes the employee a login user too.
	if body.Password != "" && body.Email != nil {
		name := body.Nombre + " " + body.Apellido
		phone := ""
		if body.Telefono != nil {
			phone = *body.Telefono
		}
		if err := ec.App.AddEmployeeCredential(name, *body.Email, body.Password, phone); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	utils.RespondJSON(c, http.StatusCreated, "Employee created", gin.H{"empleado_id": id})
}

func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := ec.Client.DeleteEmployee(c.Request.Context(), uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee deleted", nil)
}
