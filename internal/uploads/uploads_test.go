package uploads

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfRequiresKeys(t *testing.T) {
	_, err := NewConf("", "private")
	assert.Error(t, err)
	_, err = NewConf("public", "")
	assert.Error(t, err)
}

func TestAuthParams(t *testing.T) {
	conf, err := NewConf("public_key", "private_key")
	require.NoError(t, err)

	params := conf.AuthParams()

	assert.NotEmpty(t, params.Token)
	assert.Equal(t, "public_key", params.PublicKey)
	assert.Greater(t, params.Expire, time.Now().Unix())

	// The signature must be the hex HMAC-SHA1 ImageKit validates.
	mac := hmac.New(sha1.New, []byte("private_key"))
	mac.Write([]byte(params.Token + strconv.FormatInt(params.Expire, 10)))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), params.Signature)
}

func TestAuthParamsTokensAreUnique(t *testing.T) {
	conf, err := NewConf("public_key", "private_key")
	require.NoError(t, err)

	a := conf.AuthParams()
	b := conf.AuthParams()
	assert.NotEqual(t, a.Token, b.Token)
}
