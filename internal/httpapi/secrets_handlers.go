package httpapi

import (
	"net/http"
	"sync/atomic"

	"assethunt-engine/internal/config"
)

type SecretsHandler struct {
	CfgVal   *atomic.Value // stores config.Config
	SetToken func(account, token string) error
}

type setTokenReq struct {
	Token string `json:"token"`
}

func (h SecretsHandler) SetRPCToken(w http.ResponseWriter, r *http.Request) {
	var req setTokenReq
	if err := decodeBody(w, r, &req); err != nil {
		WritePipelineError(w, r, err)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := h.SetToken(cfg.RPC.TokenKeyringAccount, req.Token); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keychain", "failed to store token: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
