// handlers/auth_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"floortrack/models"
	"floortrack/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string          `json:"token"`
	Employee models.Employee `json:"employee"`
}

// Login authenticates an employee and issues a JWT.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var employee models.Employee
	err := employeeCollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		log.Printf("login FindOne error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if !utils.CheckPasswordHash(req.Password, employee.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	name := strings.TrimSpace(employee.FirstName + " " + employee.LastName)
	token, err := utils.GenerateJWT(employee.ID.Hex(), name, employee.Role)
	if err != nil {
		log.Printf("JWT generation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	employee.PasswordHash = ""
	utils.RespondWithJSON(w, http.StatusOK, loginResponse{Token: token, Employee: employee})
}

// CheckAuth reports the identity behind the presented token.
func CheckAuth(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}

	claims, err := utils.ValidateJWT(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"userID": claims.UserID,
		"name":   claims.Name,
		"role":   claims.Role,
	})
}
