package panel

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/nerrad567/grouptrail/internal/tracking"
)

//go:embed web
var content embed.FS

// defaultRangeDays is how far back the date picker starts.
const defaultRangeDays = 7

// Page renders the index page from the embedded template.
type Page struct {
	tmpl *template.Template
	now  func() time.Time
}

// pageData is the template context for index.html.
type pageData struct {
	Groups       []tracking.Group
	DefaultStart string
	DefaultEnd   string
}

// NewPage parses the embedded index template.
func NewPage() (*Page, error) {
	tmpl, err := template.ParseFS(content, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	return &Page{tmpl: tmpl, now: time.Now}, nil
}

// Render writes the page listing groups to w. The date inputs default to
// the last seven days.
func (p *Page) Render(w io.Writer, groups []tracking.Group) error {
	today := p.now().UTC()
	data := pageData{
		Groups:       groups,
		DefaultStart: today.AddDate(0, 0, -defaultRangeDays).Format(tracking.DateLayout),
		DefaultEnd:   today.Format(tracking.DateLayout),
	}
	if err := p.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering index page: %w", err)
	}
	return nil
}

// Assets returns a handler for the page's static files.
//
// When dir names an existing directory, files are served from disk so the
// script and stylesheet can be edited without a rebuild. Otherwise the
// embedded copies are used. Mount it with the /static/ prefix stripped.
func Assets(dir string) http.Handler {
	var fileSystem http.FileSystem

	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			fileSystem = http.Dir(dir)
		}
	}
	if fileSystem == nil {
		staticFS, err := fs.Sub(content, "web/static")
		if err != nil {
			panic(fmt.Sprintf("panel: failed to load embedded static assets: %v", err))
		}
		fileSystem = http.FS(staticFS)
	}

	fileServer := http.FileServer(fileSystem)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, must-revalidate")
		fileServer.ServeHTTP(w, r)
	})
}
