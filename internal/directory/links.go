package directory

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"dalil/internal/domain"
)

// Links are the outbound actions of a directory card. Empty when the entry
// has no value for that channel.
type Links struct {
	Phone   string
	Email   string
	Website string
}

// LinksFor builds tel:, mailto: and https:// URLs for e.
func LinksFor(e domain.DirectoryEntry) Links {
	var l Links
	if p := strings.Join(strings.Fields(e.Phone), ""); p != "" {
		l.Phone = "tel:" + p
	}
	if m := strings.TrimSpace(e.Email); m != "" {
		l.Email = "mailto:" + m
	}
	if w := strings.TrimSpace(e.Website); w != "" {
		if strings.HasPrefix(w, "http://") || strings.HasPrefix(w, "https://") {
			l.Website = w
		} else {
			l.Website = "https://" + w
		}
	}
	return l
}

// Opener hands a URL to the host.
type Opener interface {
	Open(url string) error
}

// SystemOpener opens URLs with the platform's default handler.
type SystemOpener struct{}

func (SystemOpener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("open: empty url")
	}
	name, args := openCommand(runtime.GOOS)
	cmd := exec.Command(name, append(args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
