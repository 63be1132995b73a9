package game

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"goboard/internal/domain/game"
	errs "goboard/internal/errors"
	"goboard/internal/httpresponse"
	"goboard/internal/report"
	gameuc "goboard/internal/usecase/game"
	"goboard/internal/utils"
)

type GameHandler struct {
	log     *zap.SugaredLogger
	session *gameuc.Session
	hub     *Hub
}

// MoveRequest names the intersection either by index or by row and column.
type MoveRequest struct {
	Pos *int `json:"pos,omitempty"`
	Row *int `json:"row,omitempty"`
	Col *int `json:"col,omitempty"`
}

type NewGameRequest struct {
	HumanColor game.Color `json:"human_color"`
}

type SoundResponse struct {
	SoundEnabled bool `json:"sound_enabled"`
}

type LegalMovesResponse struct {
	Moves []int `json:"moves"`
}

// NewGameHandler wires the handler to session and subscribes hub to its
// snapshots.
func NewGameHandler(log *zap.SugaredLogger, session *gameuc.Session, hub *Hub) *GameHandler {
	session.Subscribe(hub.PublishState)
	return &GameHandler{
		log:     log,
		session: session,
		hub:     hub,
	}
}

// Routes mounts the game API under /game.
func (g *GameHandler) Routes(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Get("/state", g.HandleState)
		r.Post("/move", g.HandleMove)
		r.Post("/pass", g.HandlePass)
		r.Post("/resign", g.HandleResign)
		r.Post("/undo", g.HandleUndo)
		r.Post("/new", g.HandleNewGame)
		r.Post("/sound", g.HandleToggleSound)
		r.Get("/legal", g.HandleLegalMoves)
		r.Get("/history", g.HandleHistory)
		r.Get("/export.sgf", g.HandleExportSGF)
		r.Get("/export.pdf", g.HandleExportPDF)
		r.Get("/ws", g.HandleWebsocket)
	})
}

func (g *GameHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, g.session.Snapshot())
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.badRequest(w, err.Error())
		return
	}

	var pos int
	switch {
	case req.Pos != nil:
		pos = *req.Pos
	case req.Row != nil && req.Col != nil:
		if *req.Row < 0 || *req.Row >= game.Size || *req.Col < 0 || *req.Col >= game.Size {
			g.writeError(w, errs.ErrIllegalMove)
			return
		}
		pos = game.ToIndex(*req.Row, *req.Col)
	default:
		g.badRequest(w, "either pos or row and col are required")
		return
	}

	if err := g.session.PlayHuman(r.Context(), pos); err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, g.session.Snapshot())
}

func (g *GameHandler) HandlePass(w http.ResponseWriter, r *http.Request) {
	g.respond(w, g.session.Pass(r.Context()))
}

func (g *GameHandler) HandleResign(w http.ResponseWriter, r *http.Request) {
	g.respond(w, g.session.Resign(r.Context()))
}

func (g *GameHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	g.respond(w, g.session.Undo(r.Context()))
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.badRequest(w, err.Error())
		return
	}
	g.respond(w, g.session.NewGame(r.Context(), req.HumanColor))
}

func (g *GameHandler) HandleToggleSound(w http.ResponseWriter, r *http.Request) {
	enabled := g.session.ToggleSound(r.Context())
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, SoundResponse{SoundEnabled: enabled})
}

func (g *GameHandler) HandleLegalMoves(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, LegalMovesResponse{Moves: g.session.LegalMoves()})
}

func (g *GameHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, g.session.MatchHistory())
}

func (g *GameHandler) HandleExportSGF(w http.ResponseWriter, r *http.Request) {
	info := g.session.MatchInfo()
	w.Header().Set("Content-Type", "application/x-go-sgf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+gameuc.SGFFileName(info.Date)+`"`)
	_, _ = w.Write([]byte(g.session.ExportSGF()))
}

func (g *GameHandler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	snap := g.session.Snapshot()
	info := g.session.MatchInfo()

	var buf bytes.Buffer
	if err := report.GameReport(&buf, snap.State, info); err != nil {
		g.log.Errorw("failed to render pdf report", "game_id", snap.State.ID, "error", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName(info.Date)+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (g *GameHandler) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	g.hub.serve(w, r, g.session.Snapshot())
}

// respond writes the fresh snapshot on success.
func (g *GameHandler) respond(w http.ResponseWriter, err error) {
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, g.session.Snapshot())
}

func (g *GameHandler) badRequest(w http.ResponseWriter, desc string) {
	g.log.Warnw("bad request", "error", desc)
	httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, desc)
}

// writeError maps session errors onto status codes.
func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrIllegalMove), errors.Is(err, errs.ErrInvalidColor):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrNotYourTurn), errors.Is(err, errs.ErrGameOver), errors.Is(err, errs.ErrNothingToUndo):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		g.log.Errorw("request failed", "error", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	g.log.Infow("request rejected", "error", err)
	httpresponse.WriteErrorWithStatus(w, status, err.Error())
}
