package auth

import "github.com/Manohar-jami/Job-Portal-Api/internal/models"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   uint
	Username string
	Role     models.Role
}
