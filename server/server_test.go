package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jrsteele09/wallet-admin-console/internal/config"
	"github.com/jrsteele09/wallet-admin-console/server"
	"github.com/jrsteele09/wallet-admin-console/sessions"
	"github.com/jrsteele09/wallet-admin-console/walletapi/walletfake"
	"github.com/stretchr/testify/require"
)

type console struct {
	fake   *walletfake.Server
	site   *httptest.Server
	client *http.Client
}

func setupConsole(t *testing.T) *console {
	t.Helper()
	fake := walletfake.New()
	t.Cleanup(fake.Close)

	t.Setenv("ENV", "TEST")
	t.Setenv("API_BASE_URL", fake.URL)
	t.Setenv("COOKIE_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://console.example.com")
	cfg, err := config.New()
	require.NoError(t, err)

	srv, err := server.New(cfg)
	require.NoError(t, err)
	site := httptest.NewServer(srv)
	t.Cleanup(site.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &console{fake: fake, site: site, client: client}
}

func (c *console) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := c.client.Get(c.site.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (c *console) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.client.PostForm(c.site.URL+path, form)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func (c *console) login(t *testing.T, remember bool) *http.Response {
	t.Helper()
	form := url.Values{"mobile": {walletfake.Mobile}, "mpin": {walletfake.MPIN}}
	if remember {
		form.Set("remember", "on")
	}
	resp := c.post(t, "/auth/login", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))
	return resp
}

func (c *console) cookieNames() []string {
	u, _ := url.Parse(c.site.URL)
	var names []string
	for _, ck := range c.client.Jar.Cookies(u) {
		names = append(names, ck.Name)
	}
	return names
}

func requireRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, location, resp.Header.Get("Location"))
}

func TestGuard_RedirectsWithoutSession(t *testing.T) {
	c := setupConsole(t)

	for _, path := range []string{"/admin/dashboard", "/admin/users", "/admin/users/2", "/admin/kyc", "/admin/profile", "/admin/unknown"} {
		resp, _ := c.get(t, path)
		requireRedirect(t, resp, "/login")
	}
	require.Empty(t, c.fake.Calls(), "guarded pages must not reach the API")

	resp, _ := c.get(t, "/")
	requireRedirect(t, resp, "/login")
}

func TestGuard_HTMXRedirect(t *testing.T) {
	c := setupConsole(t)

	req, err := http.NewRequest(http.MethodGet, c.site.URL+"/admin/dashboard", nil)
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")
	resp, err := c.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("HX-Redirect"))
}

func TestLogin_EphemeralSession(t *testing.T) {
	c := setupConsole(t)

	resp := c.login(t, false)
	var names []string
	for _, ck := range resp.Cookies() {
		names = append(names, ck.Name)
		if ck.Name == sessions.EphemeralCookieName {
			require.Zero(t, ck.MaxAge)
			require.True(t, ck.HttpOnly)
			require.NotContains(t, ck.Value, walletfake.Token)
		}
	}
	require.Equal(t, []string{sessions.EphemeralCookieName}, names)

	page, body := c.get(t, "/admin/dashboard")
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.Contains(t, body, "Total users")
	require.Contains(t, body, walletfake.Admin.Name)
	require.Equal(t, "Bearer "+walletfake.Token, c.fake.LastAuthorization())

	// Already logged in: the login page and the root both go to the dashboard.
	resp, _ = c.get(t, "/login")
	requireRedirect(t, resp, "/admin/dashboard")
	resp, _ = c.get(t, "/")
	requireRedirect(t, resp, "/admin/dashboard")
}

func TestLogin_RememberMe(t *testing.T) {
	c := setupConsole(t)

	resp := c.login(t, true)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, sessions.RememberedCookieName, cookies[0].Name)
	require.Positive(t, cookies[0].MaxAge)

	page, _ := c.get(t, "/admin/profile")
	require.Equal(t, http.StatusOK, page.StatusCode)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mobile  string
		mpin    string
		message string
		calls   int
	}{
		{name: "bad mobile", mobile: "12345", mpin: walletfake.MPIN, message: "valid 10-digit mobile number", calls: 0},
		{name: "short mpin", mobile: walletfake.Mobile, mpin: "12", message: "4 digits", calls: 0},
		{name: "wrong mpin", mobile: walletfake.Mobile, mpin: "9999", message: "Invalid mobile number or MPIN", calls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupConsole(t)

			resp := c.post(t, "/auth/login", url.Values{"mobile": {tt.mobile}, "mpin": {tt.mpin}, "remember": {"on"}})
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			loc, err := url.Parse(resp.Header.Get("Location"))
			require.NoError(t, err)
			require.Equal(t, "/login", loc.Path)
			require.Contains(t, loc.Query().Get("error"), tt.message)
			require.Equal(t, tt.mobile, loc.Query().Get("mobile"))
			require.Equal(t, "true", loc.Query().Get("remember"))

			require.Empty(t, resp.Cookies())
			require.Len(t, c.fake.Calls(), tt.calls)

			page, body := c.get(t, loc.RequestURI())
			require.Equal(t, http.StatusOK, page.StatusCode)
			require.Contains(t, body, "checked")
		})
	}
}

func TestUnauthorized_ClearsSessionFromAnyScreen(t *testing.T) {
	for _, path := range []string{"/admin/dashboard", "/admin/users", "/admin/kyc", "/admin/wallet"} {
		t.Run(path, func(t *testing.T) {
			c := setupConsole(t)
			c.login(t, false)

			c.fake.ExpireToken()
			resp, _ := c.get(t, path)
			requireRedirect(t, resp, "/login")

			var expired bool
			for _, ck := range resp.Cookies() {
				if ck.Name == sessions.EphemeralCookieName {
					expired = ck.MaxAge < 0
				}
			}
			require.True(t, expired, "session cookie should be expired")
			require.Empty(t, c.cookieNames())

			resp, _ = c.get(t, "/admin/dashboard")
			requireRedirect(t, resp, "/login")
		})
	}
}

func TestUnauthorized_OnAction(t *testing.T) {
	c := setupConsole(t)
	c.login(t, true)

	c.fake.ExpireToken()
	resp := c.post(t, "/admin/kyc/10/approve", nil)
	requireRedirect(t, resp, "/login")
	require.Empty(t, c.cookieNames())
}

func TestServerError_ShowsToastAndKeepsSession(t *testing.T) {
	c := setupConsole(t)
	c.login(t, false)
	c.fake.FailWith("/admin/users", http.StatusInternalServerError)

	resp, body := c.get(t, "/admin/users")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "toast-error")
	require.Contains(t, body, "Internal Server Error")
	require.Empty(t, resp.Cookies())

	resp, _ = c.get(t, "/admin/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnreachableAPI_ShowsToast(t *testing.T) {
	c := setupConsole(t)
	c.login(t, false)
	c.fake.Close()

	resp, body := c.get(t, "/admin/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Could not reach the wallet service")
	require.Contains(t, c.cookieNames(), sessions.EphemeralCookieName)
}

func TestLogout(t *testing.T) {
	c := setupConsole(t)
	c.login(t, true)
	require.Contains(t, c.cookieNames(), sessions.RememberedCookieName)

	resp, _ := c.get(t, "/auth/logout")
	requireRedirect(t, resp, "/login")
	require.Empty(t, c.cookieNames())

	resp, _ = c.get(t, "/admin/dashboard")
	requireRedirect(t, resp, "/login")

	// Logging out twice is harmless.
	resp, _ = c.get(t, "/auth/logout")
	requireRedirect(t, resp, "/login")
}

func TestAdminActions(t *testing.T) {
	c := setupConsole(t)
	c.login(t, false)

	resp := c.post(t, "/admin/users/3/freeze", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "error=")
	u, _ := c.fake.User(3)
	require.False(t, u.WalletFrozen)

	resp = c.post(t, "/admin/users/3/freeze", url.Values{"reason": {"suspicious activity"}})
	require.Equal(t, "/admin/users/3?notice=Wallet+frozen", resp.Header.Get("Location"))
	u, _ = c.fake.User(3)
	require.True(t, u.WalletFrozen)

	resp = c.post(t, "/admin/users/3/unfreeze", nil)
	require.Equal(t, "/admin/users/3?notice=Wallet+unfrozen", resp.Header.Get("Location"))

	resp = c.post(t, "/admin/kyc/10/approve", nil)
	require.Equal(t, "/admin/kyc?notice=KYC+approved", resp.Header.Get("Location"))
	k, _ := c.fake.KYC(10)
	require.Equal(t, "APPROVED", k.Status)

	resp = c.post(t, "/admin/kyc/999/approve", nil)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "KYC document not found", loc.Query().Get("error"))

	resp = c.post(t, "/admin/wallet/adjust", url.Values{"userId": {"2"}, "amount": {"-5"}, "type": {"CREDIT"}, "reason": {"x"}})
	require.Contains(t, resp.Header.Get("Location"), "error=")

	resp = c.post(t, "/admin/wallet/adjust", url.Values{"userId": {"2"}, "amount": {"100"}, "type": {"CREDIT"}, "reason": {"bonus"}})
	require.Equal(t, "/admin/wallet?notice=Wallet+adjusted", resp.Header.Get("Location"))
	u, _ = c.fake.User(2)
	require.InDelta(t, 1600, u.WalletBalance, 0.001)
}

func TestAdminPages_Render(t *testing.T) {
	c := setupConsole(t)
	c.login(t, false)

	pages := map[string]string{
		"/admin/dashboard":                "Pending KYC",
		"/admin/users?search=priya":       "Priya",
		"/admin/users/2":                  "Freeze wallet",
		"/admin/kyc?status=PENDING":       "Approve",
		"/admin/transactions":             "TXN100",
		"/admin/wallet":                   "Bulk credit",
		"/admin/reports":                  "Build a report",
		"/admin/profile":                  "Until the browser is closed",
		"/admin/users?page=0&notice=Done": "toast-ok",
	}
	for path, want := range pages {
		resp, body := c.get(t, path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Contains(t, body, want, path)
	}

	resp, err := c.client.PostForm(c.site.URL+"/admin/reports/generate", url.Values{"reportType": {"users"}, "dateRange": {"week"}})
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Users Report")
}

func TestSessionInfo(t *testing.T) {
	c := setupConsole(t)

	var info server.SessionInfo
	resp, body := c.get(t, "/api/session")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	require.False(t, info.Authenticated)
	require.Nil(t, info.User)

	c.login(t, true)
	resp, body = c.get(t, "/api/session")
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	require.True(t, info.Authenticated)
	require.True(t, info.Remembered)
	require.Equal(t, walletfake.Admin.Name, info.User.Name)
	require.NotNil(t, info.LoginTime)
	require.NotContains(t, body, walletfake.Token)
}

func TestSessionInfo_CORS(t *testing.T) {
	c := setupConsole(t)

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, c.site.URL+"/api/session", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		resp, err := c.client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	resp := preflight("https://console.example.com")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "https://console.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	resp = preflight("https://evil.example.com")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStaticStylesheet(t *testing.T) {
	c := setupConsole(t)

	resp, body := c.get(t, "/css/console.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/css"))
	require.Contains(t, body, ".sidebar")

	resp, _ = c.get(t, "/css/missing.css")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
