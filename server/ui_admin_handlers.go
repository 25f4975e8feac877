package server

import (
	"bytes"
	"errors"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/wallet-admin-console/apiclient"
	apperrors "github.com/jrsteele09/wallet-admin-console/internal/errors"
	"github.com/rs/zerolog/log"
)

// adminPage is one render of the admin shell.
type adminPage struct {
	Active   string
	Title    string
	Template *template.Template
	Data     any
	Error    string // shown as the page toast, overrides ?error=
}

// renderAdminPage renders a page with the admin layout. Output is buffered so
// that a 401 raised while the page was being assembled turns into a redirect
// to the login screen instead of a half-rendered page.
func (s *Server) renderAdminPage(w http.ResponseWriter, r *http.Request, page adminPage) {
	ctx := r.Context()

	var content bytes.Buffer
	contentErr := page.Template.Execute(&content, page.Data)

	if loginRequested(ctx) {
		redirectSuccess(w, r, RouteLogin)
		return
	}
	if contentErr != nil {
		log.Err(contentErr).Str("page", page.Active).Msg("Failed to render content")
		http.Error(w, "Failed to render content", http.StatusInternalServerError)
		return
	}

	user, _ := storeFrom(r).CurrentUser(ctx)
	errorMsg := page.Error
	if errorMsg == "" {
		errorMsg = r.URL.Query().Get("error")
	}

	data := map[string]any{
		"AppName":    s.config.GetAppName(),
		"User":       user,
		"ActivePage": page.Active,
		"PageTitle":  page.Title,
		"Error":      errorMsg,
		"Notice":     r.URL.Query().Get("notice"),
		"Content":    template.HTML(content.String()),
	}

	var out bytes.Buffer
	if err := s.layout.Execute(&out, data); err != nil {
		log.Err(err).Msg("Failed to render admin layout")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = w.Write(out.Bytes())
}

// finishAction ends a form post: back to the login screen if the API
// rejected the session, otherwise back to the page with a toast.
func (s *Server) finishAction(w http.ResponseWriter, r *http.Request, back string, err error, notice string) {
	if loginRequested(r.Context()) {
		redirectSuccess(w, r, RouteLogin)
		return
	}
	if err != nil {
		redirectWithError(w, r, back, s.pageError(err))
		return
	}
	redirectWithNotice(w, r, back, notice)
}

// pageError logs err and returns the text for the toast. A 401 yields no
// text; the shell redirects instead.
func (s *Server) pageError(err error) string {
	if err == nil || errors.Is(err, apiclient.ErrUnauthorized) {
		return ""
	}
	log.Err(err).Msg("Wallet API call failed")
	return errorMessage(err)
}

func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.StatusCode == http.StatusNotFound {
			return "Not found"
		}
		return "Request failed (" + strconv.Itoa(apiErr.StatusCode) + ")"
	}
	if errors.Is(err, apperrors.ErrInvalidRequest) {
		return "Please check the values you entered"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "The wallet service took too long to respond"
	}
	return "Could not reach the wallet service"
}

// pager holds the links under a paged table.
type pager struct {
	Number int // 1-based
	Total  int
	Prev   string
	Next   string
}

func newPager(r *http.Request, page, totalPages int) pager {
	link := func(p int) string {
		q := url.Values{}
		for k, v := range r.URL.Query() {
			if k != "error" && k != "notice" {
				q[k] = v
			}
		}
		q.Set("page", strconv.Itoa(p))
		return r.URL.Path + "?" + q.Encode()
	}
	p := pager{Number: page + 1, Total: max(totalPages, 1)}
	if page > 0 {
		p.Prev = link(page - 1)
	}
	if page+1 < totalPages {
		p.Next = link(page + 1)
	}
	return p
}

func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// formIDs reads ids from repeated or comma separated "ids" fields.
func formIDs(r *http.Request) []int64 {
	var ids []int64
	for _, v := range r.Form["ids"] {
		for _, part := range strings.Split(v, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil && id > 0 {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
