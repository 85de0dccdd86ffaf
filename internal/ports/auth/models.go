package auth

// Claims representa a informação extraída do token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
