package models

// Client client model
type Client struct {
	ID          string
	Secret      string
	RedirectURI string
	Scopes      []string
	UserID      string
}

// GetID client id
func (c *Client) GetID() string {
	return c.ID
}

// GetSecret client secret
func (c *Client) GetSecret() string {
	return c.Secret
}

// GetRedirectURI registered redirect URI
func (c *Client) GetRedirectURI() string {
	return c.RedirectURI
}

// GetScopes the scopes granted to the client
func (c *Client) GetScopes() []string {
	return c.Scopes
}

// GetUserID user id
func (c *Client) GetUserID() string {
	return c.UserID
}
