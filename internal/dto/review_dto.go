package dto

type UploadResultDTO struct {
	DisplayImage string `json:"displayImage"`
	OriginalFile string `json:"originalFile"`
}

type AnalyzeRequestDTO struct {
	OriginalFile string `json:"originalFile"`
}

type AnalyzeResultDTO struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}
