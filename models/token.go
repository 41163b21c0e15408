package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, session token'ın içindeki veriler (payload).
//
// JWT (JSON Web Token) nedir?
// Kullanıcı kimliğini doğrulamak için kullanılan, imzalanmış bir token.
// 3 parçadan oluşur: header.payload.signature
//
// Token'ın server tarafında saklanan bir karşılığı YOKTUR — geçerli imzalı,
// süresi dolmamış bir token'a sahip olmak session'ın kendisidir.
// Server her request'te imzayı ve expiry'yi doğrular, DB'ye gitmeden
// kullanıcının kim olduğunu bilir.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, middleware) tarafından kullanılır — circular dependency önlenir.
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
