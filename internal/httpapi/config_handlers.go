package httpapi

import (
	"net/http"
	"path/filepath"
	"sync/atomic"

	"assethunt-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	writeJSON(w, cur.Redacted())
}

// Put replaces the config file. Secrets left empty in the body keep their
// current values so a redacted GET can be edited and sent back.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var incoming config.Config
	if err := decodeBody(w, r, &incoming); err != nil {
		WritePipelineError(w, r, err)
		return
	}

	cur := h.CfgVal.Load().(config.Config)
	if incoming.RPC.Token == "" || incoming.RPC.Token == cur.Redacted().RPC.Token {
		incoming.RPC.Token = cur.RPC.Token
	}
	if incoming.Sources.Pixabay.APIKey == "" || incoming.Sources.Pixabay.APIKey == cur.Redacted().Sources.Pixabay.APIKey {
		incoming.Sources.Pixabay.APIKey = cur.Sources.Pixabay.APIKey
	}

	normalized, vr := config.NormalizeAndValidate(incoming)
	if !vr.OK() {
		WriteJSON(w, http.StatusBadRequest, vr)
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusBadRequest, "save_failed", err.Error())
		return
	}

	saved, err := h.LoadCfg()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but reload failed: "+err.Error())
		return
	}
	h.CfgVal.Store(saved)
	writeJSON(w, saved.Redacted())
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.UserCfgPath)
	writeJSON(w, map[string]any{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	_, vr := config.NormalizeAndValidate(cur)
	writeJSON(w, vr)
}
