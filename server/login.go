package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-session/session/v3"
)

// SessionUserAuthorizationHandler resolves the resource owner from the
// login session. Without a logged-in user it saves the authorize form and
// redirects to the login page; the empty user id tells the flow the
// response was already written.
func SessionUserAuthorizationHandler(w http.ResponseWriter, r *http.Request) (string, error) {
	store, err := session.Start(r.Context(), w, r)
	if err != nil {
		return "", err
	}

	uid, ok := store.Get("LoggedInUserID")
	if !ok {
		if r.Form == nil {
			_ = r.ParseForm()
		}
		store.Set("ReturnUri", r.Form)
		_ = store.Save()

		w.Header().Set("Location", "/login")
		w.WriteHeader(http.StatusFound)
		return "", nil
	}

	userID, _ := uid.(string)
	return userID, nil
}

// HandleLoginPage renders the login form.
func (s *Server) HandleLoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html;charset=UTF-8", []byte(loginPage))
}

// HandleLoginSubmit validates the posted credentials, records the user in
// the session and sends the browser back to the authorize endpoint.
func (s *Server) HandleLoginSubmit(c *gin.Context) {
	r := c.Request

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		c.Data(http.StatusUnprocessableEntity, "text/html;charset=UTF-8", []byte(loginPage))
		return
	}

	user, err := s.Users.Validate(r.Context(), username, password)
	if err != nil {
		c.Data(http.StatusUnauthorized, "text/html;charset=UTF-8", []byte(loginPage))
		return
	}

	store, err := session.Start(r.Context(), c.Writer, r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	store.Set("LoggedInUserID", user.GetID())
	if err := store.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.Redirect(http.StatusFound, "/oauth/authorize")
}

const loginPage = `<!DOCTYPE html>
<html>
<head><title>Login</title></head>
<body>
<h1>Sign in</h1>
<form action="/login" method="POST">
  <label>Username <input type="text" name="username" required></label><br>
  <label>Password <input type="password" name="password" required></label><br>
  <button type="submit">Login</button>
</form>
</body>
</html>`
