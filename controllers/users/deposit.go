package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/services"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

type CreateDepositRequest struct {
	Amount string `json:"amount"`
	CPF    string `json:"cpf" validate:"cpf"`
	Name   string `json:"name"`
}

// POST /users/deposits
// Creates a Pix charge with the payment provider and stores a PENDING deposit.
func (c *Controller) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var req CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "JSON inválido"})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "CPF inválido"})
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Valor de depósito inválido"})
		return
	}

	var user models.User
	if err := c.DB.First(&user, uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro no servidor"})
		return
	}
	payerName := strings.TrimSpace(req.Name)
	if payerName == "" {
		payerName = user.Name
	}

	client, err := utils.EfiHTTPClient()
	if err != nil {
		logging.Sugar().Errorf("deposit: efi client: %v", err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Gateway de pagamento indisponível"})
		return
	}
	token, err := utils.GetEfiAccessToken(r.Context(), client)
	if err != nil {
		logging.Sugar().Errorf("deposit: efi token: %v", err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Gateway de pagamento indisponível"})
		return
	}

	txid := utils.GeneratePixTxID()
	charge, err := utils.CreateEfiImmediateCharge(r.Context(), client, token, txid, amount.StringFixed(2), req.CPF, payerName)
	if err != nil {
		logging.Sugar().Errorf("deposit: create charge txid=%s: %v", txid, err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Falha ao criar cobrança Pix"})
		return
	}

	qr, err := utils.GetEfiQRCode(r.Context(), client, token, charge.Loc.ID)
	if err != nil {
		logging.Sugar().Errorf("deposit: fetch qrcode txid=%s: %v", txid, err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Falha ao gerar QR Code"})
		return
	}
	qrImage := qr.ImagemQRCode
	if qrImage == "" && qr.QRCode != "" {
		// Provider sometimes omits the rendered image; draw it locally.
		if img, encErr := utils.EncodeQRBase64(qr.QRCode); encErr == nil {
			qrImage = img
		}
	}

	deposit, err := c.Deposits.CreateDeposit(r.Context(), uid, amount, charge.TxID, charge.Loc.ID, qr.QRCode, qrImage)
	if err != nil {
		logging.Sugar().Errorf("deposit: persist txid=%s: %v", txid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao registrar depósito"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Cobrança Pix criada, aguarde a confirmação do pagamento",
		Data: map[string]interface{}{
			"txid":       deposit.TxID,
			"amount":     deposit.Amount.StringFixed(2),
			"status":     deposit.Status,
			"qr_payload": deposit.QRPayload,
			"qr_image":   deposit.QRImage,
		},
	})
}

// GET /users/deposits
func (c *Controller) ListDeposits(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Não autorizado"})
		return
	}

	var deposits []models.PixDeposit
	if err := c.DB.Where("user_id = ?", uid).Order("id DESC").Limit(50).Find(&deposits).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Erro ao buscar depósitos"})
		return
	}

	items := make([]map[string]interface{}, 0, len(deposits))
	for _, d := range deposits {
		items = append(items, map[string]interface{}{
			"txid":       d.TxID,
			"amount":     d.Amount.StringFixed(2),
			"status":     d.Status,
			"created_at": d.CreatedAt,
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

// pixWebhookPayload is the shape Efí posts to the registered webhook URL.
type pixWebhookPayload struct {
	Pix []struct {
		TxID  string `json:"txid"`
		Valor string `json:"valor"`
	} `json:"pix"`
}

// POST /callback/pix
// Confirms deposits by txid. Unknown txids are acknowledged with 200 so the
// provider stops retrying; replays hit the already-processed guard.
func (c *Controller) PixWebhook(w http.ResponseWriter, r *http.Request) {
	var payload pixWebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid payload"})
		return
	}

	for _, p := range payload.Pix {
		if p.TxID == "" {
			continue
		}
		err := c.Deposits.ConfirmDeposit(r.Context(), p.TxID)
		switch {
		case err == nil:
			logging.Sugar().Infof("pix webhook: deposit %s confirmed", p.TxID)
		case errors.Is(err, services.ErrAlreadyProcessed):
			logging.Sugar().Infof("pix webhook: deposit %s already processed", p.TxID)
		default:
			logging.Sugar().Errorf("pix webhook: confirm %s: %v", p.TxID, err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK"})
}
