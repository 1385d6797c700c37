package cli

import (
	"bufio"
	"io"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/client/client"
	"github.com/dmitrijs2005/todoauth/internal/client/config"
	"github.com/dmitrijs2005/todoauth/internal/client/services"
)

// newAuthService is a seam so tests can swap the server client.
var newAuthService = func(host string, timeout time.Duration) (services.AuthService, error) {
	c, err := client.NewHTTPClient(host, timeout)
	if err != nil {
		return nil, err
	}
	return services.NewAuthService(c), nil
}

// App carries state shared by the commands of one invocation.
type App struct {
	config *config.Config
	reader *bufio.Reader
	out    io.Writer

	configPath    string
	host          string
	timeout       time.Duration
	passwordStdin bool
}

func (a *App) authService() (services.AuthService, error) {
	host, err := a.config.HostOrErr()
	if err != nil {
		return nil, err
	}
	return newAuthService(host, a.config.Timeout)
}

// username returns args[0] or prompts for it.
func (a *App) username(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, "Enter username", a.out)
}

// password reads from stdin when --password-stdin is set and from the
// terminal otherwise.
func (a *App) password() ([]byte, error) {
	if a.passwordStdin {
		return ReadPasswordLine(a.reader)
	}
	return GetPassword(a.out)
}
