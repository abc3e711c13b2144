package httptransport

type VersionDTO struct {
	VersionID   string `json:"version_id"`
	CampaignID  string `json:"campaign_id"`
	Number      int    `json:"number"`
	Status      string `json:"status"`
	DownloadRef string `json:"download_ref"`
	PageCount   int    `json:"page_count"`
	WordCount   int    `json:"word_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateVersionRequest struct {
	Status string `json:"status"`
}

type CreateVersionResponse struct {
	Version VersionDTO `json:"version"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	Version VersionDTO `json:"version"`
}

type GetCurrentVersionResponse struct {
	Version VersionDTO `json:"version"`
}

type ListVersionsResponse struct {
	Items []VersionDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
