package web

import (
	"encoding/json"
	"io"
	"net/http"

	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/infra/logging"
	"innovatehub-platform/internal/usecase"
)

const maxAudioBytes = 32 << 20

type marketingCopyRequest struct {
	Prompt         string `json:"prompt"`
	MarketingType  string `json:"marketingType"`
	Tone           string `json:"tone"`
	TargetAudience string `json:"targetAudience"`
}

func (s *Server) handleMarketingCopy(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithTool(r.Context(), "marketing-copy")

	var req marketingCopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}

	result, err := s.assistUC.MarketingCopy(ctx, usecase.MarketingCopyRequest{
		Prompt:         req.Prompt,
		MarketingType:  req.MarketingType,
		Tone:           req.Tone,
		TargetAudience: req.TargetAudience,
	})
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type codeAssistantRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
	Context  string `json:"context"`
}

func (s *Server) handleCodeAssistant(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithTool(r.Context(), "code-assistant")

	var req codeAssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}

	result, err := s.assistUC.CodeAssist(ctx, usecase.CodeAssistRequest{
		Prompt:   req.Prompt,
		Language: req.Language,
		Context:  req.Context,
	})
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type enhanceImageRequest struct {
	Image string `json:"image"`
}

func (s *Server) handleEnhanceImage(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithTool(r.Context(), "enhance-image")

	var req enhanceImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}

	url, err := s.mediaUC.EnhanceImage(ctx, req.Image)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image": url})
}

type generateVideoRequest struct {
	Prompt       string `json:"prompt"`
	GenerationID string `json:"generationId"`
}

// handleGenerateVideo serves both halves of the client-driven protocol: a
// prompt submits a generation, a generationId fetches its status. The vendor
// job object passes through verbatim either way.
func (s *Server) handleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithTool(r.Context(), "generate-video")

	var req generateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}

	var (
		result map[string]any
		err    error
	)
	if req.GenerationID != "" {
		result, err = s.mediaUC.VideoStatus(ctx, req.GenerationID)
	} else {
		result, err = s.mediaUC.GenerateVideo(ctx, req.Prompt)
	}
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleVoiceToText(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithTool(r.Context(), "voice-to-text")

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid multipart body")
		return
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read audio file")
		return
	}

	transcript, err := s.transcribeUC.Transcribe(ctx, audio)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transcript)
}

type webResearchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"searchDepth"`
}

func (s *Server) handleWebResearch(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithTool(r.Context(), "web-research")

	var req webResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}

	result, err := s.researchUC.Search(ctx, req.Query, req.SearchDepth)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type checkSecretsRequest struct {
	Refresh bool `json:"refresh"`
}

// handleCheckSecrets never fails into the caller: a registry error yields an
// empty list plus the message, still HTTP 200.
func (s *Server) handleCheckSecrets(w http.ResponseWriter, r *http.Request) {
	var req checkSecretsRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means plain check

	var (
		secrets []model.SecretStatus
		err     error
	)
	if req.Refresh {
		secrets, err = s.secrets.Refresh(r.Context())
	} else {
		secrets, err = s.secrets.Check(r.Context())
	}
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"secrets":        []model.SecretStatus{},
			"groupedSecrets": map[string][]model.SecretStatus{},
			"error":          err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"secrets":        secrets,
		"groupedSecrets": model.GroupByService(secrets),
	})
}

type databaseRequest struct {
	Action    string `json:"action"`
	TableName string `json:"tableName"`
	Limit     int    `json:"limit"`
	Search    string `json:"search"`
}

func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request) {
	var req databaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}

	switch req.Action {
	case "listTables":
		tables, err := s.browserUC.ListTables(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if tables == nil {
			tables = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": tables})

	case "getRecords":
		desc, err := s.browserUC.FetchRecords(r.Context(), req.TableName, req.Limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		rows := s.browserUC.Filter(desc.Rows, req.Search)
		if rows == nil {
			rows = []model.Record{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": rows})

	default:
		writeError(w, http.StatusInternalServerError, "unknown action")
	}
}
