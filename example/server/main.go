package main

import (
	"log"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookmarkd/oauth2"
	"github.com/bookmarkd/oauth2/errors"
	"github.com/bookmarkd/oauth2/generates"
	"github.com/bookmarkd/oauth2/models"
	"github.com/bookmarkd/oauth2/server"
	"github.com/bookmarkd/oauth2/store"
)

func main() {
	appCfg := server.GetConfig()

	tokens, closeStore, err := buildTokenStore(appCfg)
	if err != nil {
		log.Fatalf("token store: %v", err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	clients, err := appCfg.BuildClientStore()
	if err != nil {
		log.Fatalf("client store: %v", err)
	}
	if len(appCfg.Clients) == 0 {
		// Development fallback so the example works out of the box.
		_ = clients.Set("000000", &models.Client{
			ID:          "000000",
			Secret:      "999999",
			RedirectURI: "http://localhost:9094",
			Scopes:      []string{"profile", "shelf:read", "shelf:write"},
		})
	}

	users, err := appCfg.BuildUserStore()
	if err != nil {
		log.Fatalf("user store: %v", err)
	}
	if len(appCfg.Users) == 0 {
		_ = users.Set("test", "test")
	}

	cfg := server.NewConfig()
	if appCfg.Server.Realm != "" {
		cfg.Realm = appCfg.Server.Realm
	}
	if len(appCfg.DefaultScopes) > 0 {
		cfg.DefaultScopes = appCfg.DefaultScopes
	}
	if appCfg.Token.CodeTTL > 0 {
		cfg.CodeTTL = appCfg.Token.CodeTTL
	}

	srv := server.NewServer(cfg, clients, users, tokens, nil)
	srv.UserAuthorizationHandler = server.SessionUserAuthorizationHandler
	srv.InternalErrorHandler = func(err error) *errors.Response {
		log.Printf("internal error: %v", err)
		return nil
	}

	engine := server.NewGinEngine(srv)

	addr := appCfg.ListenAddr()
	log.Printf("authorization server listening on %s", addr)
	log.Fatal(engine.Run(addr))
}

func buildTokenStore(appCfg *server.AppConfig) (oauth2.TokenStore, func() error, error) {
	if appCfg.JWT.Enabled {
		method := jwt.GetSigningMethod(appCfg.JWT.Method)
		if method == nil {
			method = jwt.SigningMethodHS512
		}
		ts := generates.NewJWTTokenStore(appCfg.JWT.KeyID, []byte(appCfg.JWT.Key), method, appCfg.TokenConfig().AccessTTL)
		return ts, nil, nil
	}

	gen := generates.NewAccessGenerate()
	if appCfg.Token.File != "" {
		ts, err := store.NewFileTokenStore(gen, appCfg.TokenConfig(), appCfg.Token.File)
		if err != nil {
			return nil, nil, err
		}
		return ts, ts.Close, nil
	}
	ts, err := store.NewMemoryTokenStore(gen, appCfg.TokenConfig())
	if err != nil {
		return nil, nil, err
	}
	return ts, ts.Close, nil
}
