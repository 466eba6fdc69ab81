package oauth2

// ResponseType the type of authorization request
type ResponseType string

// define the type of authorization request
const (
	Code  ResponseType = "code"
	Token ResponseType = "token"
)

func (rt ResponseType) String() string {
	return string(rt)
}

// GrantType authorization model
type GrantType string

// define authorization model
const (
	AuthorizationCodeGrant GrantType = "authorization_code"
	ClientCredentials      GrantType = "client_credentials"
	Implicit               GrantType = "implicit"
	PasswordCredentials    GrantType = "password"
	Refreshing             GrantType = "refresh_token"
)

func (gt GrantType) String() string {
	return string(gt)
}
