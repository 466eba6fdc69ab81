package generates

import (
	"bytes"
	"context"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookmarkd/oauth2"
)

// Basic carries the inputs of token string generation.
type Basic struct {
	Client    oauth2.ClientInfo
	UserID    string
	CreateAt  time.Time
	TokenInfo oauth2.TokenInfo
}

// AccessGenerate generate the access and refresh token strings
type AccessGenerate interface {
	Token(ctx context.Context, data *Basic, isGenRefresh bool) (string, string, error)
}

// NewAccessGenerate create to generate the access token instance
func NewAccessGenerate() *AccessTokenGenerate {
	return &AccessTokenGenerate{}
}

// AccessTokenGenerate generate the opaque access token
type AccessTokenGenerate struct{}

// Token based on the UUID generated token
func (ag *AccessTokenGenerate) Token(ctx context.Context, data *Basic, isGenRefresh bool) (string, string, error) {
	buf := bytes.NewBufferString(data.Client.GetID())
	buf.WriteString(data.UserID)
	buf.WriteString(strconv.FormatInt(data.CreateAt.UnixNano(), 10))

	access := base64.URLEncoding.EncodeToString([]byte(uuid.NewMD5(uuid.Must(uuid.NewRandom()), buf.Bytes()).String()))
	access = strings.ToUpper(strings.TrimRight(access, "="))
	refresh := ""
	if isGenRefresh {
		refresh = base64.URLEncoding.EncodeToString([]byte(uuid.NewSHA1(uuid.Must(uuid.NewRandom()), buf.Bytes()).String()))
		refresh = strings.ToUpper(strings.TrimRight(refresh, "="))
	}

	return access, refresh, nil
}
