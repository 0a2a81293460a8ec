// Package telegram valida el initData que Telegram entrega a las WebApps.
// Algoritmo: https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingHash = errors.New("initData sin hash")
	ErrInvalidHash = errors.New("hash de initData inválido")
	ErrExpired     = errors.New("initData expirado")
	ErrMissingUser = errors.New("initData sin usuario")
	ErrEmptyToken  = errors.New("bot token vacío")
)

// WebAppUser usuario que abrió la WebApp.
type WebAppUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// InitData campos relevantes del initData ya validado.
type InitData struct {
	User     WebAppUser
	AuthDate time.Time
	QueryID  string
}

// Validate verifica la firma de initData con el token del bot y su antigüedad.
// maxAge <= 0 desactiva la verificación de antigüedad.
func Validate(initData, botToken string, maxAge time.Duration, now time.Time) (*InitData, error) {
	if botToken == "" {
		return nil, ErrEmptyToken
	}
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("parse initData: %w", err)
	}
	hash := values.Get("hash")
	if hash == "" {
		return nil, ErrMissingHash
	}
	if !hmac.Equal([]byte(Sign(values, botToken)), []byte(hash)) {
		return nil, ErrInvalidHash
	}

	authUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("auth_date inválido: %w", err)
	}
	authDate := time.Unix(authUnix, 0)
	if maxAge > 0 && now.Sub(authDate) > maxAge {
		return nil, ErrExpired
	}

	raw := values.Get("user")
	if raw == "" {
		return nil, ErrMissingUser
	}
	var user WebAppUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("user inválido: %w", err)
	}
	if user.ID <= 0 {
		return nil, ErrMissingUser
	}
	return &InitData{User: user, AuthDate: authDate, QueryID: values.Get("query_id")}, nil
}

// Sign calcula el hash hex esperado para values (se ignora la clave hash).
func Sign(values url.Values, botToken string) string {
	pairs := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		pairs = append(pairs, k+"="+values.Get(k))
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
