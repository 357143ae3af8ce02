package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/app/services"
	"github.com/pucknotes/server/internal/middleware"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidFieldError(paramName, "invalid "+paramName)
	}
	return id, nil
}

// readUpload returns the "file" part of a multipart request, or nil when there is none.
// The caller must run the returned close func.
func readUpload(ctx *gin.Context) (*dto.Upload, func(), error) {
	header, err := ctx.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperrors.NewInvalidFieldError("file", "invalid file upload")
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*dto.Upload, func(), error) {
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("error opening upload: %w", err)
	}
	return &dto.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}

// NoteController handles note operations
type NoteController struct {
	noteService    services.NoteService
	listingService services.ListingService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, listingService services.ListingService, maxUploadBytes int64, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService:    noteService,
		listingService: listingService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (c *NoteController) limitBody(ctx *gin.Context) {
	if c.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)
	}
}

// ListNotes godoc
// @Summary List notes
// @Description Filter notes by catalog position, owner, tags and free text. Returns ids, a count or full notes.
// @Tags notes
// @Produce json
// @Param query query string false "Substring of title or description"
// @Param tags query []string false "Any of these tags"
// @Param ownerID query int false "Owner account ID"
// @Param sectionID query int false "Section ID"
// @Param sectionNumber query string false "Section number"
// @Param courseID query int false "Course ID"
// @Param courseCode query string false "Course code"
// @Param majorID query int false "Major ID"
// @Param majorCode query string false "Major code"
// @Param schoolID query int false "School ID"
// @Param schoolName query string false "School name"
// @Param semesterID query int false "Semester ID"
// @Param semesterName query string false "Semester name"
// @Param sort query string false "likes, title or date" default(likes)
// @Param order query string false "asc or desc" default(asc)
// @Param return query string false "id, count or object" default(id)
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	var req dto.NoteListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	result, err := c.listingService.ListNotes(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result.Payload()))
}

// GetNote godoc
// @Summary Get a note by ID
// @Description The owner is hidden when the note was posted anonymously
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=models.Note}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	note, err := c.noteService.GetNote(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// DownloadFile godoc
// @Summary Download the file attached to a note
// @Tags notes
// @Produce octet-stream
// @Param id path int true "Note ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/file [get]
func (c *NoteController) DownloadFile(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	file, rc, err := c.noteService.GetNoteFile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer rc.Close()

	ctx.DataFromReader(http.StatusOK, file.Size, file.ContentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.FileName),
	})
}

// CreateNote godoc
// @Summary Create a new note
// @Description Publish a note in a section, optionally with an attached file
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param link formData string false "External link"
// @Param sectionID formData int true "Section ID"
// @Param tags formData []string false "Tags"
// @Param anonymous formData bool false "Hide the owner"
// @Param file formData file false "Attachment"
// @Success 201 {object} dto.APIResponse{data=models.Note}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	if err := services.RequirePoster(middleware.CurrentAccount(ctx), "notes"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.limitBody(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	upload, done, err := readUpload(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer done()

	note, err := c.noteService.CreateNote(ctx.Request.Context(), middleware.CurrentAccount(ctx), &req, upload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(note))
}

// UpdateNote godoc
// @Summary Update a note
// @Description Only the supplied fields change. A new file replaces the old one.
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param link formData string false "External link"
// @Param sectionID formData int false "Section ID"
// @Param tags formData []string false "Tags"
// @Param anonymous formData bool false "Hide the owner"
// @Param file formData file false "Replacement attachment"
// @Success 200 {object} dto.APIResponse{data=models.Note}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [put]
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.limitBody(ctx)

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}
	// An empty tags list is a valid update, so presence is checked separately
	if tags, ok := ctx.GetPostFormArray("tags"); ok {
		req.Tags = &tags
	}

	upload, done, err := readUpload(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer done()

	note, err := c.noteService.UpdateNote(ctx.Request.Context(), middleware.CurrentAccount(ctx), id, &req, upload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// DeleteNote godoc
// @Summary Delete a note
// @Description Deletes the note, its comments, likes and attached file
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.noteService.DeleteNote(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Debug().Int64("noteID", id).Msg("Note deleted via API")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
