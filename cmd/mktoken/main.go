// mktoken mints a short-lived HS256 bearer token for exercising the API
// locally. Usage: mktoken <user-id-hex> [ttl].
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <user-id-hex> [ttl]", os.Args[0])
	}
	uid, err := bson.ObjectIDFromHex(os.Args[1])
	if err != nil {
		log.Fatalf("invalid user id %q: %v", os.Args[1], err)
	}

	ttl := time.Hour
	if len(os.Args) > 2 {
		if ttl, err = time.ParseDuration(os.Args[2]); err != nil {
			log.Fatalf("invalid ttl %q: %v", os.Args[2], err)
		}
	}

	claims := jwt.MapClaims{
		"sub": uid.Hex(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(signed)
}
