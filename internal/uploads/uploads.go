// Package uploads mints ImageKit client-upload authentication parameters.
// The browser uploads directly to ImageKit; this service only signs the
// token+expire pair with the private key, so no SDK client is needed.
package uploads

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const tokenTTL = 30 * time.Minute

type Conf struct {
	publicKey  string
	privateKey string
}

func NewConf(publicKey, privateKey string) (*Conf, error) {
	if publicKey == "" || privateKey == "" {
		return nil, fmt.Errorf("imagekit keys are empty")
	}
	return &Conf{publicKey: publicKey, privateKey: privateKey}, nil
}

type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

func (c *Conf) AuthParams() AuthParams {
	token := uuid.NewString()
	expire := time.Now().Add(tokenTTL).Unix()
	return AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: c.sign(token, expire),
		PublicKey: c.publicKey,
	}
}

// sign computes the hex HMAC-SHA1 over token+expire that the ImageKit
// upload endpoint validates.
func (c *Conf) sign(token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(c.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
