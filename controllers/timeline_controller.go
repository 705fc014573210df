package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sarvcast/sarvcast-backend/config"
	"github.com/sarvcast/sarvcast-backend/services"
	"github.com/sarvcast/sarvcast-backend/timeline"
	"github.com/sarvcast/sarvcast-backend/ws"
)

var (
	timelineSvcOnce sync.Once
	timelineSvc     *services.TimelineService
)

func timelineService() *services.TimelineService {
	timelineSvcOnce.Do(func() {
		timelineSvc = services.NewTimelineService(config.DB)
	})
	return timelineSvc
}

// ====== INPUT STRUCTS ======

type ImageSegmentInput struct {
	ID                  *uuid.UUID `json:"id"`
	StartTime           int        `json:"start_time"`
	EndTime             int        `json:"end_time"`
	SortOrder           int        `json:"sort_order"`
	ImageURL            string     `json:"image_url" binding:"required"`
	SceneDescription    string     `json:"scene_description"`
	TransitionType      string     `json:"transition_type"`
	IsKeyFrame          bool       `json:"is_key_frame"`
	VoiceActorSegmentID *uuid.UUID `json:"voice_actor_segment_id"`
	CharacterID         *uuid.UUID `json:"character_id"`
}

type ReplaceImageTimelineInput struct {
	Segments []ImageSegmentInput `json:"segments" binding:"required"`
}

type VoiceActorSegmentInput struct {
	PersonID         uuid.UUID `json:"person_id" binding:"required"`
	StartTime        int       `json:"start_time"`
	EndTime          int       `json:"end_time"`
	Role             string    `json:"role" binding:"required"`
	CharacterName    string    `json:"character_name"`
	VoiceDescription string    `json:"voice_description"`
	IsPrimary        bool      `json:"is_primary"`
}

type ReplaceVoiceActorsInput struct {
	Segments []VoiceActorSegmentInput `json:"segments" binding:"required"`
}

func (in ImageSegmentInput) toSegment() timeline.Segment {
	transition := timeline.Transition(in.TransitionType)
	if transition == "" {
		transition = timeline.TransitionFade
	}
	s := timeline.Segment{
		Start:     in.StartTime,
		End:       in.EndTime,
		SortOrder: in.SortOrder,
		Payload: timeline.ImagePayload{
			ImageURL:            in.ImageURL,
			SceneDescription:    in.SceneDescription,
			Transition:          transition,
			IsKeyFrame:          in.IsKeyFrame,
			VoiceActorSegmentID: in.VoiceActorSegmentID,
			CharacterID:         in.CharacterID,
		},
	}
	if in.ID != nil {
		s.ID = *in.ID
	}
	return s
}

func (in VoiceActorSegmentInput) toSegment() timeline.Segment {
	return timeline.Segment{
		Start: in.StartTime,
		End:   in.EndTime,
		Payload: timeline.VoiceActorPayload{
			PersonID:         in.PersonID,
			Role:             in.Role,
			CharacterName:    in.CharacterName,
			VoiceDescription: in.VoiceDescription,
			IsPrimary:        in.IsPrimary,
		},
	}
}

// respondTimelineError maps engine errors to HTTP responses. Validation
// failures carry every violation so the editor UI can show them all at once.
func respondTimelineError(c *gin.Context, err error) {
	var verr *timeline.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "timeline validation failed",
			"violations": verr.Violations,
		})
	case errors.Is(err, services.ErrEpisodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
	case errors.Is(err, services.ErrSegmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "segment not found"})
	case errors.Is(err, services.ErrInvariantViolation):
		// Already logged with detail by the service; clients get no more
		// than a generic failure.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "timeline data is inconsistent"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "timeline operation failed"})
	}
}

func episodeIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid episode id"})
		return uuid.Nil, false
	}
	return id, true
}

// ====== IMAGE TIMELINE ======

// GET /admin/episodes/:id/image-timeline
func GetImageTimeline(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	segments, err := timelineService().AllSegmentsForEpisode(episodeID, timeline.KindImage)
	if err != nil {
		respondTimelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": segments, "total": len(segments)})
}

// PUT /admin/episodes/:id/image-timeline?optimize=1
// Full replacement: the submitted list is validated as a whole and either
// committed entirely or rejected entirely.
func ReplaceImageTimeline(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	var input ReplaceImageTimelineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	segments := make([]timeline.Segment, len(input.Segments))
	for i, in := range input.Segments {
		segments[i] = in.toSegment()
	}

	optimize := c.Query("optimize") == "1"
	stored, err := timelineService().ReplaceSegments(episodeID, timeline.KindImage, segments, optimize)
	if err != nil {
		respondTimelineError(c, err)
		return
	}

	ws.SendTimelineUpdate(episodeID.String(), string(timeline.KindImage), len(stored))

	c.JSON(http.StatusOK, gin.H{
		"message": "image timeline replaced",
		"data":    stored,
		"total":   len(stored),
	})
}

// GET /episodes/:id/image-at?t=42
func GetImageAtTime(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	t, err := strconv.Atoi(c.Query("t"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter t must be an integer"})
		return
	}

	segment, found, err := timelineService().SegmentAtTime(episodeID, timeline.KindImage, t)
	if err != nil {
		respondTimelineError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": segment})
}

// ====== VOICE ACTOR SEGMENTS ======

// GET /admin/episodes/:id/voice-actors
func GetVoiceActorSegments(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	segments, err := timelineService().AllSegmentsForEpisode(episodeID, timeline.KindVoiceActor)
	if err != nil {
		respondTimelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": segments, "total": len(segments)})
}

// PUT /admin/episodes/:id/voice-actors
// Bulk replacement, same all-or-nothing semantics as the image timeline.
func ReplaceVoiceActorSegments(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	var input ReplaceVoiceActorsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	segments := make([]timeline.Segment, len(input.Segments))
	for i, in := range input.Segments {
		segments[i] = in.toSegment()
	}

	optimize := c.Query("optimize") == "1"
	stored, err := timelineService().ReplaceSegments(episodeID, timeline.KindVoiceActor, segments, optimize)
	if err != nil {
		respondTimelineError(c, err)
		return
	}

	ws.SendTimelineUpdate(episodeID.String(), string(timeline.KindVoiceActor), len(stored))

	c.JSON(http.StatusOK, gin.H{
		"message": "voice actor segments replaced",
		"data":    stored,
		"total":   len(stored),
	})
}

// POST /admin/episodes/:id/voice-actors
func CreateVoiceActorSegment(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	var input VoiceActorSegmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := timelineService().UpsertSegment(episodeID, timeline.KindVoiceActor, input.toSegment())
	if err != nil {
		respondTimelineError(c, err)
		return
	}

	ws.SendTimelineUpdate(episodeID.String(), string(timeline.KindVoiceActor), 0)

	c.JSON(http.StatusCreated, gin.H{
		"message": "voice actor segment created",
		"data":    stored,
	})
}

// PUT /admin/episodes/:id/voice-actors/:segment_id
func UpdateVoiceActorSegment(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	segmentID, err := uuid.Parse(c.Param("segment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid segment id"})
		return
	}

	var input VoiceActorSegmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	segment := input.toSegment()
	segment.ID = segmentID

	stored, err := timelineService().UpsertSegment(episodeID, timeline.KindVoiceActor, segment)
	if err != nil {
		respondTimelineError(c, err)
		return
	}

	ws.SendTimelineUpdate(episodeID.String(), string(timeline.KindVoiceActor), 0)

	c.JSON(http.StatusOK, gin.H{
		"message": "voice actor segment updated",
		"data":    stored,
	})
}

// DELETE /admin/episodes/:id/voice-actors/:segment_id
func DeleteVoiceActorSegment(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	segmentID, err := uuid.Parse(c.Param("segment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid segment id"})
		return
	}

	if err := timelineService().DeleteSegment(episodeID, timeline.KindVoiceActor, segmentID); err != nil {
		respondTimelineError(c, err)
		return
	}

	ws.SendTimelineUpdate(episodeID.String(), string(timeline.KindVoiceActor), 0)

	c.JSON(http.StatusOK, gin.H{"message": "voice actor segment deleted"})
}

// GET /episodes/:id/voice-actor-at?t=42
func GetVoiceActorAtTime(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	t, err := strconv.Atoi(c.Query("t"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter t must be an integer"})
		return
	}

	segment, found, err := timelineService().SegmentAtTime(episodeID, timeline.KindVoiceActor, t)
	if err != nil {
		respondTimelineError(c, err)
		return
	}
	if !found {
		// Gaps are legal for voice actors (silence, music).
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": segment})
}

// GET /episodes/:id/primary-voice-actor
func GetPrimaryVoiceActor(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	segment, found, err := timelineService().PrimaryVoiceActor(episodeID)
	if err != nil {
		respondTimelineError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": segment})
}

// ====== RANGE QUERIES ======

// GET /episodes/:id/segments-in-range?kind=image&from=40&to=50
func GetSegmentsInRange(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	kind := timeline.Kind(c.DefaultQuery("kind", string(timeline.KindImage)))
	if kind != timeline.KindImage && kind != timeline.KindVoiceActor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be image or voice_actor"})
		return
	}

	from, err1 := strconv.Atoi(c.Query("from"))
	to, err2 := strconv.Atoi(c.Query("to"))
	if err1 != nil || err2 != nil || from > to {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be integers with from <= to"})
		return
	}

	segments, err := timelineService().SegmentsInTimeRange(episodeID, kind, from, to)
	if err != nil {
		respondTimelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": segments, "total": len(segments)})
}
