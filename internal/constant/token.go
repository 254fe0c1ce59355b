package constant

// JWTType is the kind claim carried by every issued token. A token is only
// accepted where its kind is expected.
type JWTType string

const (
	JWT_TYPE_ACCESS         JWTType = "access"
	JWT_TYPE_REFRESH        JWTType = "refresh"
	JWT_TYPE_EMAIL_VERIFY   JWTType = "email_verify"
	JWT_TYPE_PASSWORD_RESET JWTType = "password_reset"
)
