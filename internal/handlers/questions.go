package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/hasker/backend/internal/models"
	"github.com/emilythestrangee/hasker/backend/internal/service"
)

type QuestionHandler struct {
	listings  *service.ListingService
	questions *service.QuestionService
}

func NewQuestionHandler(listings *service.ListingService, questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{listings: listings, questions: questions}
}

// GetQuestions lists questions newest first.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page, err := h.listings.Recent(c.Request.Context(), c.Query("page"))
	h.writeQuestionPage(c, "", page, err)
}

// GetHotQuestions lists questions by vote score.
func (h *QuestionHandler) GetHotQuestions(c *gin.Context) {
	page, err := h.listings.Hot(c.Request.Context(), c.Query("page"))
	h.writeQuestionPage(c, "", page, err)
}

// GetTaggedQuestions lists questions carrying the :name tag.
func (h *QuestionHandler) GetTaggedQuestions(c *gin.Context) {
	tag := c.Param("name")
	page, err := h.listings.Tagged(c.Request.Context(), tag, c.Query("page"))
	h.writeQuestionPage(c, "Tag: "+tag, page, err)
}

// Search matches ?q= against titles and texts. "tag:name" redirects to the
// tag listing.
func (h *QuestionHandler) Search(c *gin.Context) {
	tag, phrase, err := service.ParseSearch(c.Query("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if tag != "" {
		c.Redirect(http.StatusFound, "/api/tags/"+url.PathEscape(tag)+"/questions")
		return
	}
	page, err := h.listings.Search(c.Request.Context(), phrase, c.Query("page"))
	h.writeQuestionPage(c, "Search results: "+phrase, page, err)
}

// GetQuestion returns a question with one page of hot-ranked answers.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	detail, err := h.listings.Detail(c.Request.Context(), id, c.Query("page"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	viewer, _ := extractUserID(c)
	answers := make([]gin.H, 0, len(detail.Answers.Items))
	for _, a := range detail.Answers.Items {
		body := votableJSON(a, viewer)
		body["text"] = a.Text
		body["question_id"] = a.QuestionID
		body["is_correct"] = detail.Question.IsCorrect(a)
		answers = append(answers, body)
	}

	c.JSON(http.StatusOK, gin.H{
		"question": questionJSON(detail.Question, viewer),
		"answers":  pageJSON(detail.Answers, answers),
	})
}

// CreateQuestion creates a new question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := h.questions.Ask(c.Request.Context(), authorID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, questionJSON(q, authorID))
}

// UpdateQuestion edits a question (PROTECTED - requires ownership)
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	callerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var input models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := h.questions.Edit(c.Request.Context(), callerID, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questionJSON(q, callerID))
}

// DeleteQuestion deletes a question and its answers (PROTECTED - requires ownership)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	callerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if err := h.questions.Delete(c.Request.Context(), callerID, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// CreateAnswer answers a question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.questions.Answer(c.Request.Context(), authorID, questionID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body := votableJSON(a, authorID)
	body["text"] = a.Text
	body["question_id"] = a.QuestionID
	c.JSON(http.StatusCreated, body)
}

// ChooseCorrectAnswer marks an answer as correct (PROTECTED - question author only)
func (h *QuestionHandler) ChooseCorrectAnswer(c *gin.Context) {
	callerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	answerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad answer id"})
		return
	}

	questionID, err := h.questions.ChooseCorrect(c.Request.Context(), callerID, answerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question_id": questionID, "correct_answer_id": answerID})
}

// AddTag returns the lower-cased tag from ?tag=, creating it if needed.
func (h *QuestionHandler) AddTag(c *gin.Context) {
	tag, err := h.questions.AddTag(c.Request.Context(), c.Query("tag"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.String(http.StatusOK, tag.Name)
}

func (h *QuestionHandler) writeQuestionPage(c *gin.Context, title string, page service.Page[*models.Question], err error) {
	if err != nil {
		handleServiceError(c, err)
		return
	}

	viewer, _ := extractUserID(c)
	items := make([]gin.H, 0, len(page.Items))
	for _, q := range page.Items {
		items = append(items, questionJSON(q, viewer))
	}

	body := pageJSON(page, items)
	if title != "" {
		body["title"] = title
	}
	c.JSON(http.StatusOK, body)
}

func questionJSON(q *models.Question, viewer int) gin.H {
	body := votableJSON(q, viewer)
	tags := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		tags = append(tags, t.Name)
	}
	body["title"] = q.Title
	body["text"] = q.Text
	body["tags"] = tags
	body["correct_answer_id"] = q.CorrectAnswerID
	return body
}

type renderable interface {
	models.Votable
	AuthorUser() models.User
}

// votableJSON renders the fields shared by questions and answers. The
// caller's own stance is included when viewer is non-zero.
func votableJSON(v renderable, viewer int) gin.H {
	author := v.AuthorUser()
	body := gin.H{
		"id":        v.Ref().ID,
		"author":    gin.H{"id": author.ID, "username": author.Username, "avatar": author.Avatar},
		"votes":     v.Votes(),
		"likes":     v.Likes(),
		"dislikes":  v.Dislikes(),
		"published": v.PublishedAt(),
	}
	if viewer != 0 {
		likers, dislikers := v.Voters()
		body["my_vote"] = models.Ballot(likers, dislikers).StanceOf(viewer).String()
	}
	return body
}

func pageJSON[T any](p service.Page[T], items []gin.H) gin.H {
	return gin.H{
		"items":        items,
		"page":         p.Number,
		"page_size":    p.Size,
		"total":        p.Total,
		"num_pages":    p.NumPages,
		"has_next":     p.HasNext(),
		"has_previous": p.HasPrevious(),
	}
}
