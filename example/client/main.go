package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	authServerURL = env("AUTH_SERVER_URL", "http://localhost:9096")

	config = oauth2.Config{
		ClientID:     env("CLIENT_ID", "000000"),
		ClientSecret: env("CLIENT_SECRET", "999999"),
		Scopes:       []string{"profile", "shelf:read"},
		RedirectURL:  "http://localhost:9094/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  authServerURL + "/oauth/authorize",
			TokenURL: authServerURL + "/oauth/token",
		},
	}

	globalToken *oauth2.Token
)

func main() {
	http.HandleFunc("/", handleIndex)
	http.HandleFunc("/callback", handleCallback)
	http.HandleFunc("/refresh", handleRefresh)
	http.HandleFunc("/try", handleTry)
	http.HandleFunc("/client-credentials", handleClientCredentials)

	log.Println("example client running at http://localhost:9094")
	log.Fatal(http.ListenAndServe(":9094", nil))
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	u := config.AuthCodeURL("xyz")
	http.Redirect(w, r, u, http.StatusFound)
}

func handleCallback(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	if r.Form.Get("state") != "xyz" {
		http.Error(w, "state invalid", http.StatusBadRequest)
		return
	}
	code := r.Form.Get("code")
	if code == "" {
		http.Error(w, "code not found", http.StatusBadRequest)
		return
	}

	token, err := config.Exchange(context.Background(), code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	globalToken = token

	writeJSON(w, token)
}

func handleRefresh(w http.ResponseWriter, r *http.Request) {
	if globalToken == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	globalToken.Expiry = globalToken.Expiry.AddDate(0, 0, -1)
	token, err := config.TokenSource(context.Background(), globalToken).Token()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	globalToken = token

	writeJSON(w, token)
}

func handleTry(w http.ResponseWriter, r *http.Request) {
	if globalToken == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	client := config.Client(context.Background(), globalToken)
	resp, err := client.Get(authServerURL + "/api/v1/userinfo")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.Copy(w, resp.Body)
}

func handleClientCredentials(w http.ResponseWriter, r *http.Request) {
	cfg := clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.Endpoint.TokenURL,
		Scopes:       []string{"shelf:read"},
	}

	token, err := cfg.Token(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, token)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	_ = e.Encode(v)
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
