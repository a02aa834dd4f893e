package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"visionflow/internal/board"
	"visionflow/internal/model"
	"visionflow/internal/service"
)

// BoardService is the board side of the service layer.
type BoardService interface {
	Get(ctx context.Context, projectID uuid.UUID) (board.Board, error)
	Replace(ctx context.Context, projectID uuid.UUID, next board.Board) (board.Board, error)
	Move(ctx context.Context, projectID uuid.UUID, req board.MoveRequest) (service.MoveResult, error)
	Tasks(ctx context.Context, projectID uuid.UUID, columnID, search string) ([]model.Task, error)
	AddTask(ctx context.Context, projectID uuid.UUID, task *model.Task) (board.Board, error)
	RemoveTask(ctx context.Context, projectID uuid.UUID, taskID uuid.UUID) error
	SetStatus(ctx context.Context, projectID uuid.UUID, taskID uuid.UUID, status string) (service.MoveResult, error)
}

// BoardSubscriber streams live board envelopes for one project.
type BoardSubscriber interface {
	Subscribe(ctx context.Context, projectID uuid.UUID) (<-chan []byte, func(), error)
}

type BoardHandler struct {
	boards  BoardService
	access  AccessChecker
	updates BoardSubscriber
	origins []string
}

func NewBoardHandler(boards BoardService, access AccessChecker, updates BoardSubscriber, origins []string) *BoardHandler {
	return &BoardHandler{boards: boards, access: access, updates: updates, origins: origins}
}

type MoveResponse struct {
	Board  board.Board `json:"board"`
	Status string      `json:"status,omitempty"`
}

// Get godoc
// @Summary      Board of a project
// @Tags         Board
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} board.Board
// @Router       /projects/{id}/board [get]
func (h *BoardHandler) Get(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.access, projectID, model.RoleViewer); !ok {
		return
	}

	b, err := h.boards.Get(c.Request.Context(), projectID)
	if err != nil {
		writeBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Replace godoc
// @Summary      Replace the whole board
// @Description  The board must hold exactly the project's current task ids.
// @Tags         Board
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        board body board.Board true "Board"
// @Success      200 {object} board.Board
// @Failure      409 {object} map[string]interface{}
// @Router       /projects/{id}/board [put]
func (h *BoardHandler) Replace(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.access, projectID, model.RoleEditor); !ok {
		return
	}

	var next board.Board
	if err := c.ShouldBindJSON(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board"})
		return
	}

	saved, err := h.boards.Replace(c.Request.Context(), projectID, next)
	if err != nil {
		writeBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Move godoc
// @Summary      Apply a finished drag gesture
// @Description  Same-column moves reorder; cross-column moves also change the task status.
// @Tags         Board
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        request body board.MoveRequest true "Move"
// @Success      200 {object} MoveResponse
// @Failure      409 {object} map[string]interface{}
// @Router       /projects/{id}/board/move [post]
func (h *BoardHandler) Move(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.access, projectID, model.RoleEditor); !ok {
		return
	}

	var req board.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid move"})
		return
	}

	res, err := h.boards.Move(c.Request.Context(), projectID, req)
	if err != nil {
		if errors.Is(err, board.ErrInvalidMove) {
			log.Debug().Err(err).Str("project_id", projectID.String()).Msg("rejected move")
		}
		writeBoardError(c, err)
		return
	}

	resp := MoveResponse{Board: res.Board}
	if res.Change != nil {
		resp.Status = res.Change.DestinationTitle
	}
	c.JSON(http.StatusOK, resp)
}

// ColumnTasks godoc
// @Summary      Tasks of one column in board order
// @Tags         Board
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        column_id path string true "Column ID"
// @Param        search query string false "Case-insensitive match on title, description and tags"
// @Success      200 {array} TaskResponse
// @Router       /projects/{id}/board/columns/{column_id}/tasks [get]
func (h *BoardHandler) ColumnTasks(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.access, projectID, model.RoleViewer); !ok {
		return
	}

	tasks, err := h.boards.Tasks(c.Request.Context(), projectID, c.Param("column_id"), c.Query("search"))
	if err != nil {
		var moveErr *board.InvalidMoveError
		if errors.As(err, &moveErr) && moveErr.Reason == board.ReasonUnknownColumn {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
			return
		}
		writeBoardError(c, err)
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// Socket godoc
// @Summary      Live board updates
// @Description  WebSocket stream of {"kind":"board"|"notification"} envelopes.
// @Tags         Board
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Router       /projects/{id}/board/ws [get]
func (h *BoardHandler) Socket(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.access, projectID, model.RoleViewer); !ok {
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	// Incoming frames are ignored; CloseRead handles pings and detects disconnects.
	ctx := conn.CloseRead(c.Request.Context())

	messages, cleanup, err := h.updates.Subscribe(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}
