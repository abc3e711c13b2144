package httptransport

// Public DTOs never carry internal identifiers. The token in the URL is the
// only handle the external party ever sees.

type CampaignSummaryDTO struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type VersionSummaryDTO struct {
	Number      int    `json:"number"`
	Status      string `json:"status"`
	DownloadRef string `json:"download_ref"`
	PageCount   int    `json:"page_count"`
	WordCount   int    `json:"word_count"`
}

type ResolveResponse struct {
	Campaign  CampaignSummaryDTO `json:"campaign"`
	Version   VersionSummaryDTO  `json:"version"`
	Stage     string             `json:"stage"`
	Outcome   string             `json:"outcome"`
	ViewState string             `json:"view_state"`
}

type MarkViewedResponse struct {
	ViewState string `json:"view_state"`
}

type InlineCommentDTO struct {
	Page  int    `json:"page"`
	Quote string `json:"quote,omitempty"`
	Note  string `json:"note"`
}

type DecideRequest struct {
	Outcome        string             `json:"outcome"`
	Comment        string             `json:"comment,omitempty"`
	InlineComments []InlineCommentDTO `json:"inline_comments,omitempty"`
}

type DecideResponse struct {
	Status string `json:"status"`
}

type CreateLinkRequest struct {
	CampaignID string `json:"campaign_id"`
	WorkflowID string `json:"workflow_id"`
	ExpiresAt  string `json:"expires_at,omitempty"`
}

type ShareLinkDTO struct {
	LinkID     string `json:"link_id"`
	CampaignID string `json:"campaign_id"`
	WorkflowID string `json:"workflow_id"`
	Token      string `json:"token"`
	CreatedAt  string `json:"created_at"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	RevokedAt  string `json:"revoked_at,omitempty"`
}

type CreateLinkResponse struct {
	Link ShareLinkDTO `json:"link"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
