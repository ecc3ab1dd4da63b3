package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessUploadReceipt = "receipt uploaded successfully"
	MessageSuccessGetReceipt    = "receipt retrieved successfully"
	MessageSuccessDeleteReceipt = "receipt deleted successfully"

	MessageFailedUploadReceipt = "failed to upload receipt"
	MessageFailedGetReceipt    = "failed to retrieve receipt"
	MessageFailedDeleteReceipt = "failed to delete receipt"
	MessageFailedCheckReceipts = "failed to check receipts"

	ErrReceiptNotFound = errors.New("receipt not found")
)

type (
	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	UploadReceiptResponse struct {
		ID       string `json:"id"`
		ImageURL string `json:"image_url"`
		State    string `json:"state"`
	}

	ReceiptResponse struct {
		ID           string    `json:"id"`
		Merchant     string    `json:"merchant"`
		Total        float64   `json:"total"`
		PurchaseDate time.Time `json:"purchase_date"`
		Summary      string    `json:"summary,omitempty"`
		ImageURL     string    `json:"image_url"`
		CreatedAt    time.Time `json:"created_at"`
	}

	ReceiptDetailResponse struct {
		ReceiptResponse
		State string `json:"state"`
	}

	// ReceiptSummary holds the per-state counts for a user's full receipt set.
	ReceiptSummary struct {
		Total            int `json:"total"`
		ProcessingFailed int `json:"processingFailed"`
		Successful       int `json:"successful"`
		Processing       int `json:"processing"`
	}

	CheckReceiptsResponse struct {
		Success  bool              `json:"success"`
		User     SessionUser       `json:"user"`
		Summary  ReceiptSummary    `json:"summary"`
		Receipts []ReceiptResponse `json:"receipts"`
	}
)
