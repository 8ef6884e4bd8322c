// cordobactl é a linha de comando da API de cobrança.
//
//	cordobactl login -e diretor@cordoba.com -p dir123
//	cordobactl me
//	cordobactl status
//	cordobactl register -n "Ana" -e ana@cordoba.com -p segredo -c segredo
//	cordobactl logout
//
// O token fica em <config do usuário>/cordoba/token.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/akamensky/argparse"

	"github.com/cordobafintech/cobranca-api/pkg/client"
)

const defaultURL = "http://localhost:8000"

func main() {
	parser := argparse.NewParser("cordobactl", "Cliente de linha de comando da Córdoba Fintech")
	baseURL := parser.String("u", "url", &argparse.Options{
		Default: envOr("CORDOBA_API_URL", defaultURL),
		Help:    "URL base da API (ou CORDOBA_API_URL)",
	})

	loginCmd := parser.NewCommand("login", "Autentica e guarda o token")
	loginEmail := loginCmd.String("e", "email", &argparse.Options{Help: "E-mail"})
	loginPass := loginCmd.String("p", "password", &argparse.Options{Help: "Senha"})

	logoutCmd := parser.NewCommand("logout", "Apaga o token local")
	meCmd := parser.NewCommand("me", "Mostra o usuário autenticado")
	statusCmd := parser.NewCommand("status", "Mostra o status de acesso a dados")

	registerCmd := parser.NewCommand("register", "Cadastra um usuário")
	regName := registerCmd.String("n", "name", &argparse.Options{Help: "Nome"})
	regEmail := registerCmd.String("e", "email", &argparse.Options{Help: "E-mail"})
	regPass := registerCmd.String("p", "password", &argparse.Options{Help: "Senha"})
	regConfirm := registerCmd.String("c", "confirm", &argparse.Options{Help: "Confirmação da senha"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(2)
	}

	tokenPath, err := client.DefaultTokenPath()
	if err != nil {
		fail(err)
	}
	c := client.New(*baseURL, client.WithTokenStore(client.NewFileTokenStore(tokenPath)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch {
	case loginCmd.Happened():
		session := client.NewSession(c)
		cred := client.Credentials{Email: *loginEmail, Password: *loginPass}
		if err := client.ValidateLogin(cred); err != nil {
			fail(err)
		}
		if err := session.Login(ctx, cred); err != nil {
			fail(err)
		}
		u := session.User()
		fmt.Printf("Autenticado como %s (%s)\n", u.Name, u.Role)
		if a := session.Access(); a != nil && a.Message != nil {
			fmt.Println(*a.Message)
		}

	case logoutCmd.Happened():
		if err := c.Logout(); err != nil {
			fail(err)
		}
		fmt.Println("Sessão encerrada")

	case meCmd.Happened():
		requireLogin(c)
		u, err := c.CurrentUser(ctx)
		if err != nil {
			failSession(c, err)
		}
		printJSON(u)

	case statusCmd.Happened():
		requireLogin(c)
		st, err := c.AccessStatus(ctx)
		if err != nil {
			failSession(c, err)
		}
		printJSON(st)

	case registerCmd.Happened():
		u, err := c.RegisterValidated(ctx, client.RegisterForm{
			Name:            *regName,
			Email:           *regEmail,
			Password:        *regPass,
			ConfirmPassword: *regConfirm,
		})
		if err != nil {
			fail(err)
		}
		fmt.Printf("Usuário %d criado (%s)\n", u.ID, u.Role)
	}
}

func requireLogin(c *client.Client) {
	if !c.IsAuthenticated() {
		fmt.Fprintln(os.Stderr, "Não autenticado. Rode: cordobactl login")
		os.Exit(1)
	}
}

// failSession apaga o token quando a API responde 401.
func failSession(c *client.Client, err error) {
	if client.IsUnauthorized(err) {
		_ = c.Logout()
	}
	fail(err)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, client.ErrorMessage(err))
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
