package handler

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"zipdrop/internal/config"
	"zipdrop/internal/http/views"
	"zipdrop/internal/service"
	serviceMocks "zipdrop/internal/service/mocks"
	"zipdrop/internal/session"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Tiers: config.TierConfig{
			FreeDailyUploads: 2,
			FreeMaxBytes:     2 * 1024 * 1024,
			PremiumMaxBytes:  50 * 1024 * 1024,
		},
	}
}

func newTestApp(checkoutSvc service.CheckoutService) *fiber.App {
	cfg := testConfig()
	sessions := session.NewManager(config.CookieConfig{HTTPOnly: true, SameSite: "Lax"}, cfg.Tiers.FreeDailyUploads)

	app := fiber.New(fiber.Config{
		Views:        views.Engine(),
		ErrorHandler: ErrorHandler(),
	})
	if checkoutSvc == nil {
		checkoutSvc = new(serviceMocks.MockCheckoutService)
	}
	RegisterRoutes(app, cfg, sessions, service.NewCompressService(), checkoutSvc)
	return app
}

// browser replays session cookies between requests, standing in for one visitor.
type browser struct {
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(app *fiber.App) *browser {
	return &browser{app: app, cookies: make(map[string]string)}
}

func (b *browser) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := b.app.Test(req, -1)
	require.NoError(t, err)

	for _, c := range resp.Cookies() {
		b.cookies[c.Name] = c.Value
	}
	return resp
}

func (b *browser) get(t *testing.T, path string) *http.Response {
	t.Helper()
	return b.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

// uploadRequest builds a multipart POST /compressor with the given files.
func uploadRequest(t *testing.T, format string, files map[string][]byte) *http.Request {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for name, data := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.WriteField("format", format))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/compressor", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func zipEntries(t *testing.T, resp *http.Response) map[string][]byte {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		entries[f.Name] = content
	}
	return entries
}

func TestPages(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	for _, path := range []string{"/", "/donate", "/success-donation", "/compressor", "/premium", "/privacy-policy", "/data-deletion", "/healthz"} {
		resp := b.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestNotFoundRendersErrorPage(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	resp := b.get(t, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), "page not found")
}

func TestCompressorFreeHappyPath(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	payload := bytes.Repeat([]byte{0x42}, 1024*1024) // 1 MiB
	resp := b.do(t, uploadRequest(t, "none", map[string][]byte{"photo.png": payload}))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="compressed_files.zip"`)

	entries := zipEntries(t, resp)
	require.Len(t, entries, 1)
	assert.Equal(t, payload, entries["photo.png"], "file must be archived unchanged")

	// Quota counter moved to 1.
	form := b.get(t, "/compressor")
	assert.Contains(t, body(t, form), "1 of 2 used")
}

func TestCompressorConversion(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	pdf := []byte("%PDF-1.4 fake content")
	resp := b.do(t, uploadRequest(t, "jpeg", map[string][]byte{"doc.pdf": pdf}))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := zipEntries(t, resp)
	require.Len(t, entries, 1)
	assert.Equal(t, pdf, entries["doc.pdf"], "non-image must stay byte-identical with its extension")
}

func TestCompressorDisallowedExtension(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	resp := b.do(t, uploadRequest(t, "none", map[string][]byte{"virus.exe": []byte("MZ")}))

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/compressor", resp.Header.Get("Location"))

	form := b.get(t, "/compressor")
	assert.Contains(t, body(t, form), "file type not allowed")
}

func TestCompressorEmptyBatch(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	resp := b.do(t, uploadRequest(t, "none", nil))

	require.Equal(t, http.StatusFound, resp.StatusCode)
	form := b.get(t, "/compressor")
	assert.Contains(t, body(t, form), "Please select at least one file.")
}

func TestCompressorBatchOverCeiling(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	big := make([]byte, 3*1024*1024)
	resp := b.do(t, uploadRequest(t, "none", map[string][]byte{"big.pdf": big}))

	require.Equal(t, http.StatusFound, resp.StatusCode)
	form := b.get(t, "/compressor")
	assert.Contains(t, body(t, form), "exceeds the 2 MB limit")

	// A rejected batch must not consume quota.
	assert.Contains(t, body(t, b.get(t, "/compressor")), "0 of 2 used")
}

func TestCompressorQuotaExhausted(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	small := map[string][]byte{"a.png": []byte("data")}
	for i := 0; i < 2; i++ {
		resp := b.do(t, uploadRequest(t, "none", small))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// Third same-day attempt is rejected and sent to the premium page.
	resp := b.do(t, uploadRequest(t, "none", small))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/premium", resp.Header.Get("Location"))

	page := b.get(t, "/premium")
	assert.Contains(t, body(t, page), "Free daily limit reached")
}

func TestPremiumRaisesCeilingAndSkipsQuota(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	resp := b.get(t, "/success-premium")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	form := b.get(t, "/compressor")
	assert.Contains(t, body(t, form), "Premium account")

	// 3 MiB would be rejected on the free tier.
	big := make([]byte, 3*1024*1024)
	for i := 0; i < 3; i++ {
		resp := b.do(t, uploadRequest(t, "none", map[string][]byte{"big.pdf": big}))
		require.Equal(t, http.StatusOK, resp.StatusCode, "premium uploads have no daily limit")
	}
}

func TestCompressorSkippedFileStillArchivesRest(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	resp := b.do(t, uploadRequest(t, "none", map[string][]byte{
		"keep.pdf":  []byte("%PDF"),
		"virus.exe": []byte("MZ"),
	}))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := zipEntries(t, resp)
	require.Len(t, entries, 1)
	assert.Contains(t, entries, "keep.pdf")

	form := b.get(t, "/compressor")
	assert.Contains(t, body(t, form), "file type not allowed")
}

func TestCreateCheckoutSession(t *testing.T) {
	t.Run("redirects to provider", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCheckoutService)
		mockSvc.On("Create", mock.Anything, service.ProductDonation).
			Return("https://checkout.stripe.com/pay/cs_test", nil).Once()

		app := newTestApp(mockSvc)
		b := newBrowser(app)

		resp := b.do(t, httptest.NewRequest(http.MethodPost, "/create-checkout-session", nil))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "https://checkout.stripe.com/pay/cs_test", resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("premium product", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCheckoutService)
		mockSvc.On("Create", mock.Anything, service.ProductPremium).
			Return("https://checkout.stripe.com/pay/cs_premium", nil).Once()

		app := newTestApp(mockSvc)
		b := newBrowser(app)

		resp := b.do(t, httptest.NewRequest(http.MethodPost, "/create-premium-session", nil))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "https://checkout.stripe.com/pay/cs_premium", resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("provider error surfaces verbatim", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCheckoutService)
		mockSvc.On("Create", mock.Anything, service.ProductDonation).
			Return("", errors.New("Invalid API Key provided")).Once()

		app := newTestApp(mockSvc)
		b := newBrowser(app)

		resp := b.do(t, httptest.NewRequest(http.MethodPost, "/create-checkout-session", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Invalid API Key provided", body(t, resp))
		mockSvc.AssertExpectations(t)
	})
}

func TestFlashesAreConsumedOnce(t *testing.T) {
	app := newTestApp(nil)
	b := newBrowser(app)

	b.do(t, uploadRequest(t, "none", map[string][]byte{"virus.exe": []byte("MZ")}))

	first := b.get(t, "/compressor")
	assert.Contains(t, body(t, first), "file type not allowed")

	second := b.get(t, "/compressor")
	assert.NotContains(t, body(t, second), "file type not allowed")
}
