// Package telegram validates Telegram WebApp initData.
// https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
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

// maxInitDataAge is how long initData stays acceptable after auth_date.
const maxInitDataAge = 24 * time.Hour

var (
	ErrInvalidInitData = errors.New("invalid initData")
	ErrStaleInitData   = errors.New("initData is stale")
)

// WebAppUser is the user payload embedded in initData.
type WebAppUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ValidateInitData verifies the HMAC signature and freshness of the initData
// query string and returns the embedded user.
func ValidateInitData(initData, botToken string) (*WebAppUser, error) {
	return validateInitDataAt(initData, botToken, time.Now())
}

func validateInitDataAt(initData, botToken string, now time.Time) (*WebAppUser, error) {
	if initData == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidInitData)
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("%w: hash missing", ErrInvalidInitData)
	}
	values.Del("hash")

	// data-check-string: sorted key=value pairs joined with \n.
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	dataCheck := strings.Join(pairs, "\n")

	// HMAC-SHA256 with key = HMAC("WebAppData", botToken).
	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheck))
	computed := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computed), []byte(gotHash)) {
		return nil, fmt.Errorf("%w: signature mismatch", ErrInvalidInitData)
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", ErrInvalidInitData)
	}
	if now.Sub(time.Unix(authDate, 0)) > maxInitDataAge {
		return nil, ErrStaleInitData
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return nil, fmt.Errorf("%w: bad user payload: %v", ErrInvalidInitData, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id missing", ErrInvalidInitData)
	}
	return &user, nil
}
