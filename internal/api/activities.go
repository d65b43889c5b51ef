package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/myhealthapp/fitlog/pkg/models"
)

// ListActivities fetches every activity of the logged-in user.
func (c *Client) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	err := c.do(ctx, request{method: http.MethodGet, path: "/activity/list/", auth: true}, &activities)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return activities, nil
}

// GetActivity fetches one activity.
func (c *Client) GetActivity(ctx context.Context, id models.ID) (*models.Activity, error) {
	var activity models.Activity
	err := c.do(ctx, request{method: http.MethodGet, path: activityPath("/activity/%s/", id), auth: true}, &activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// CreateActivity saves a new activity. The backend's copy is returned when it sends one.
func (c *Client) CreateActivity(ctx context.Context, payload models.ActivityPayload) (*models.Activity, error) {
	var activity models.Activity
	err := c.do(ctx, request{method: http.MethodPost, path: "/activity/", body: payload, auth: true}, &activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivity sends every field of payload.
func (c *Client) UpdateActivity(ctx context.Context, id models.ID, payload models.ActivityPayload) (*models.Activity, error) {
	var activity models.Activity
	err := c.do(ctx, request{method: http.MethodPatch, path: activityPath("/activity/update/%s/", id), body: payload, auth: true}, &activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivityStatus patches only the status.
func (c *Client) UpdateActivityStatus(ctx context.Context, id models.ID, status models.Status) (*models.Activity, error) {
	var activity models.Activity
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   activityPath("/activity/update/%s/", id),
		body:   models.StatusPayload{Status: status},
		auth:   true,
	}, &activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// DeleteActivity removes an activity.
func (c *Client) DeleteActivity(ctx context.Context, id models.ID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: activityPath("/activity/delete/%s/", id), auth: true}, nil)
}

func activityPath(format string, id models.ID) string {
	return fmt.Sprintf(format, url.PathEscape(id.String()))
}
