package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"CineReel.com/pkg/errno"
	hzclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Requester is the transport seam between the data layer and the backend.
// The state controllers and the mutation API depend on this, not on the
// concrete hertz client, so tests inject fakes.
type Requester interface {
	// Do issues one request. body (request payload) and out (decoded response
	// data) may both be nil. Every failure is an errno value, possibly wrapped.
	Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error
}

// Client issues authenticated JSON calls against the CineReel backend and
// normalizes every failure into the errno taxonomy.
type Client struct {
	hc      *hzclient.Client
	baseURL string
	session SessionProvider
}

func NewClient(baseURL string, session SessionProvider, timeout time.Duration) (*Client, error) {
	hc, err := hzclient.NewClient(
		hzclient.WithDialTimeout(timeout),
		hzclient.WithClientReadTimeout(timeout),
	)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to build http client")
	}
	return &Client{
		hc:      hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
	}, nil
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Code int64           `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req.SetMethod(method)
	req.SetRequestURI(uri)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	if s := c.session.Session(); s != nil && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errno.RequestErr.WithMessage("failed to encode request body")
		}
		req.SetBody(payload)
		req.Header.SetContentTypeBytes([]byte("application/json"))
	}

	if err := c.hc.Do(ctx, req, resp); err != nil {
		hlog.Warnf("request %s %s failed: %v", method, path, err)
		return errors.WithMessage(errno.RequestErr, err.Error())
	}

	if err := statusToErr(resp.StatusCode()); err != nil {
		hlog.Warnf("request %s %s returned status %d", method, path, resp.StatusCode())
		return err
	}

	return decodeEnvelope(resp.Body(), out)
}

// statusToErr maps the HTTP status onto the error taxonomy. nil means 2xx.
func statusToErr(status int) error {
	switch {
	case status >= consts.StatusOK && status < consts.StatusMultipleChoices:
		return nil
	case status == consts.StatusNotFound:
		return errno.NotFoundErr
	case status == consts.StatusForbidden:
		return errno.ForbiddenErr
	case status == consts.StatusUnauthorized:
		return errno.AuthRequiredErr
	default:
		return errno.RequestErr.WithMessage("unexpected http status")
	}
}

// decodeEnvelope validates the response wrapper and decodes its data field.
// Malformed bodies never propagate upward as undefined shapes.
func decodeEnvelope(raw []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errno.RequestErr.WithMessage("malformed response body")
	}
	if env.Code != errno.SuccessCode {
		return codeToErr(env.Code, env.Msg)
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return errno.RequestErr.WithMessage("response missing data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errno.RequestErr.WithMessage("malformed response data")
	}
	return nil
}

func codeToErr(code int64, msg string) error {
	e := errno.NewErrNo(code, msg)
	switch code {
	case errno.NotFoundCode, errno.ForbiddenCode, errno.AuthRequiredCode, errno.ValidationCode:
		return e
	default:
		if msg == "" {
			return errno.RequestErr
		}
		return errno.RequestErr.WithMessage(msg)
	}
}
