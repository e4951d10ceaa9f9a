package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/drivevault/drivevault/pkg/configs"
)

// Share sessions are short-lived signed credentials recording "this browser
// passed the password check for token X". The token is part of the signed
// input, so verification recomputes the signature with the token currently
// being accessed: a credential minted for one share can never authorize
// another.

func shareSessionMAC(token string, expiresUnix int64) string {
	secret := configs.GetConfig().Share.SessionSecret
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	mac.Write([]byte("|"))
	mac.Write([]byte(strconv.FormatInt(expiresUnix, 10)))

	return hex.EncodeToString(mac.Sum(nil))
}

// mintShareSession issues a credential for token, valid for the configured
// session TTL.
func mintShareSession(token string) string {
	expires := time.Now().Add(configs.GetConfig().Share.GetSessionTTL()).Unix()

	return strconv.FormatInt(expires, 10) + "." + shareSessionMAC(token, expires)
}

// verifyShareSession checks a credential against the token being accessed.
func verifyShareSession(token, session string) bool {
	expStr, sig, ok := strings.Cut(session, ".")
	if !ok {
		return false
	}

	expires, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil || time.Now().Unix() > expires {
		return false
	}

	want := shareSessionMAC(token, expires)

	return hmac.Equal([]byte(want), []byte(sig))
}
