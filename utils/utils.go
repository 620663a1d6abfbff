package utils

import (
	"errors"
	"strconv"
	"time"

	"blogapp/config"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// 凭证校验的三类失败，中间件据此区分 401 文案
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Claims 只携带用户 id。角色永远不进 token：
// 角色可能在两次请求之间变化，必须每次从库里重新读
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

func HashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	return string(hash), err
}

func CheckPassword(pwd, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}

// GenerateJWT 签发 HS256 token，有效期取配置
func GenerateJWT(userID uint) (string, error) {
	expire := time.Duration(config.AppConfig.Jwt.ExpireHours) * time.Hour
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(expire).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.Jwt.Secret))
}

// ParseJWT 校验凭证并取出主体 id。
// 过期与签名错误分开返回，但两条路径做同样多的工作量
func ParseJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(config.AppConfig.Jwt.Secret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
