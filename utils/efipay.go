package utils

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Efí (Gerencianet) Pix API client. Deposits create an immediate charge keyed
// by txid, fetch its QR code, and later a webhook confirms payment for that
// txid.

const (
	efiProductionURL = "https://api-pix.gerencianet.com.br"
	efiSandboxURL    = "https://api-pix-h.gerencianet.com.br"
)

var nonDigits = regexp.MustCompile(`\D`)

func getEfiConfig() (baseURL, clientID, clientSecret, pixKey string, err error) {
	clientID = os.Getenv("EFI_CLIENT_ID")
	clientSecret = os.Getenv("EFI_CLIENT_SECRET")
	pixKey = os.Getenv("EFI_PIX_KEY")

	baseURL = efiProductionURL
	if strings.EqualFold(os.Getenv("EFI_SANDBOX"), "true") {
		baseURL = efiSandboxURL
	}
	if clientID == "" || clientSecret == "" || pixKey == "" {
		return "", "", "", "", fmt.Errorf("EFI_CLIENT_ID, EFI_CLIENT_SECRET and EFI_PIX_KEY are required")
	}
	return baseURL, clientID, clientSecret, pixKey, nil
}

var (
	efiClientOnce sync.Once
	efiClient     *http.Client
	efiClientErr  error
)

// EfiHTTPClient returns the shared client configured with the Efí mTLS
// certificate (EFI_CERT_PATH / EFI_KEY_PATH, PEM pair).
func EfiHTTPClient() (*http.Client, error) {
	efiClientOnce.Do(func() {
		certPath := os.Getenv("EFI_CERT_PATH")
		keyPath := os.Getenv("EFI_KEY_PATH")
		if certPath == "" || keyPath == "" {
			efiClientErr = fmt.Errorf("EFI_CERT_PATH and EFI_KEY_PATH are required")
			return
		}
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			efiClientErr = fmt.Errorf("load Efi certificate: %w", err)
			return
		}
		efiClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
			},
		}
	})
	return efiClient, efiClientErr
}

var (
	efiTokenMu     sync.Mutex
	efiAccessToken string
	efiTokenExpiry time.Time
)

type efiTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// GetEfiAccessToken authenticates with client credentials, caching the token
// until shortly before it expires.
func GetEfiAccessToken(ctx context.Context, client *http.Client) (string, error) {
	efiTokenMu.Lock()
	defer efiTokenMu.Unlock()

	if efiAccessToken != "" && time.Now().Before(efiTokenExpiry) {
		return efiAccessToken, nil
	}

	baseURL, clientID, clientSecret, _, err := getEfiConfig()
	if err != nil {
		return "", err
	}

	body := []byte(`{"grant_type":"client_credentials"}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("efi auth request: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	var tok efiTokenResponse
	if err := json.Unmarshal(respBody, &tok); err != nil {
		return "", fmt.Errorf("parse efi token: %w (body: %s)", err, string(respBody))
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("efi auth failed: %s", string(respBody))
	}

	efiAccessToken = tok.AccessToken
	// renew a minute early so the token cannot expire mid-request
	efiTokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn-60) * time.Second)
	return efiAccessToken, nil
}

// EfiChargeResponse is the subset of the create-charge response the deposit
// flow needs.
type EfiChargeResponse struct {
	TxID string `json:"txid"`
	Loc  struct {
		ID int64 `json:"id"`
	} `json:"loc"`
	Status string `json:"status"`
}

// CreateEfiImmediateCharge creates an immediate Pix charge for the given
// txid, amount (already formatted with 2 decimals) and payer document.
func CreateEfiImmediateCharge(ctx context.Context, client *http.Client, accessToken, txid, amount, cpf, name string) (*EfiChargeResponse, error) {
	baseURL, _, _, pixKey, err := getEfiConfig()
	if err != nil {
		return nil, err
	}

	bodyObj := map[string]interface{}{
		"calendario": map[string]int{"expiracao": 3600},
		"devedor": map[string]string{
			"cpf":  nonDigits.ReplaceAllString(cpf, ""),
			"nome": name,
		},
		"valor":              map[string]string{"original": amount},
		"chave":              pixKey,
		"solicitacaoPagador": "Depósito em plataforma",
	}
	body, _ := json.Marshal(bodyObj)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, baseURL+"/v2/cob/"+txid, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("efi create charge: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("efi create charge %d: %s", resp.StatusCode, string(respBody))
	}

	var charge EfiChargeResponse
	if err := json.Unmarshal(respBody, &charge); err != nil {
		return nil, fmt.Errorf("parse efi charge: %w", err)
	}
	return &charge, nil
}

// EfiQRCodeResponse holds the copy-paste payload and provider-rendered image
// for a charge location.
type EfiQRCodeResponse struct {
	QRCode       string `json:"qrcode"`
	ImagemQRCode string `json:"imagemQrcode"`
}

// GetEfiQRCode fetches the QR code for a charge location id.
func GetEfiQRCode(ctx context.Context, client *http.Client, accessToken string, locationID int64) (*EfiQRCodeResponse, error) {
	baseURL, _, _, _, err := getEfiConfig()
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v2/loc/%d/qrcode", baseURL, locationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("efi qrcode: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("efi qrcode %d: %s", resp.StatusCode, string(respBody))
	}

	var qr EfiQRCodeResponse
	if err := json.Unmarshal(respBody, &qr); err != nil {
		return nil, fmt.Errorf("parse efi qrcode: %w", err)
	}
	return &qr, nil
}
