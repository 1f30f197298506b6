// Command sessiontoken prints a signed session token for an email address.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/quantonganh/codebinge/auth"
)

func main() {
	email := flag.String("email", "", "email the session is issued for")
	ttl := flag.Duration("ttl", 24*time.Hour, "session lifetime")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}

	secret := viper.GetString("session.secret")
	if secret == "" {
		log.Fatal("session.secret is not set")
	}

	token, err := auth.NewSessions(secret).Issue(*email, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
