package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

// QuestionFilters are forwarded verbatim as query parameters; filtering and
// pagination of the question bank are the backend's job.
type QuestionFilters struct {
	Offset     int
	Limit      int
	Search     string
	Company    string
	Topic      string
	Difficulty string
}

func (f QuestionFilters) values() url.Values {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(f.Offset))
	q.Set("limit", strconv.Itoa(f.Limit))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Company != "" {
		q.Set("company", f.Company)
	}
	if f.Topic != "" {
		q.Set("topic", f.Topic)
	}
	if f.Difficulty != "" {
		q.Set("difficulty", f.Difficulty)
	}
	return q
}

func (c *Client) GetQuestions(ctx context.Context, token string, filters QuestionFilters) (*models.QuestionsResponse, error) {
	var out models.QuestionsResponse
	if err := c.do(ctx, http.MethodGet, "/questions", filters.values(), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, token, questionID string) (*models.Response, error) {
	q := url.Values{}
	q.Set("id", questionID)
	var out models.Response
	if err := c.do(ctx, http.MethodDelete, "/question", q, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// progressReader reports the percentage of body bytes handed to the
// transport while the upload is in flight.
type progressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 && p.progress != nil {
		p.sent += int64(n)
		pct := int(p.sent * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		p.progress(pct)
	}
	return n, err
}

// UploadQuestions submits a validated CSV as multipart form data under the
// questions_file field. progress receives 0-100 as the body streams out.
func (c *Client) UploadQuestions(ctx context.Context, token, filename string, file io.Reader, progress func(percent int)) (*models.Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("questions_file", filename)
	if err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, errors.Wrap(err, "copy file into form")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	body := &progressReader{r: &buf, total: int64(buf.Len()), progress: progress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/questions", body)
	if err != nil {
		return nil, errors.Wrap(err, "create upload request")
	}
	req.ContentLength = body.total
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.observe(ctx, http.MethodPost, "/questions", start, err)
	if err != nil {
		return nil, errors.Wrap(err, "upload request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read upload response")
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, errors.Wrapf(err, "parse upload response (status %d)", resp.StatusCode)
	}
	if apiErr := c.checkEnvelope(resp.StatusCode, env); apiErr != nil {
		return nil, apiErr
	}
	return &models.Response{Code: env.Code, Message: env.Message}, nil
}
