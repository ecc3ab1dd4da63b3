package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"receiptly/domain"
	"receiptly/entities"
	"receiptly/internal/utils"
	"receiptly/internal/utils/mailing"
	"receiptly/internal/utils/storage"
	"receiptly/pkg/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The merchant column doubles as the processing-state channel: the OCR
// pipeline writes these sentinels into it and the read path classifies on
// them. The failed check runs first so a merchant string matching both
// sentinels still lands in exactly one bucket.
const (
	SentinelProcessing = "Processing..."
	SentinelFailed     = "Processing Failed"

	StateProcessing       = "processing"
	StateProcessingFailed = "processingFailed"
	StateSuccessful       = "successful"
)

type (
	ReceiptService interface {
		CheckReceipts(ctx context.Context, user domain.SessionUser) (domain.CheckReceiptsResponse, error)
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error)
		GetReceiptByID(ctx context.Context, id string, userID string) (domain.ReceiptDetailResponse, error)
		DeleteReceipt(ctx context.Context, id string, userID string) error
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		profileRepository auth.ProfileRepository
		s3                storage.AwsS3
		ocrModelURL       string
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, profileRepository auth.ProfileRepository, s3 storage.AwsS3) ReceiptService {
	return NewReceiptServiceWithOCRURL(receiptRepository, profileRepository, s3, utils.GetConfig("OCR_MODEL_URL"))
}

func NewReceiptServiceWithOCRURL(receiptRepository ReceiptRepository, profileRepository auth.ProfileRepository, s3 storage.AwsS3, ocrModelURL string) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		profileRepository: profileRepository,
		s3:                s3,
		ocrModelURL:       ocrModelURL,
	}
}

// ClassifyMerchant maps a merchant field to its processing state. The failed
// match takes priority over the processing match.
func ClassifyMerchant(merchant string) string {
	if strings.Contains(merchant, SentinelFailed) {
		return StateProcessingFailed
	}
	if merchant == SentinelProcessing {
		return StateProcessing
	}
	return StateSuccessful
}

func (s *receiptService) CheckReceipts(ctx context.Context, user domain.SessionUser) (domain.CheckReceiptsResponse, error) {
	receipts, err := s.receiptRepository.GetReceiptsByUser(ctx, user.ID)
	if err != nil {
		return domain.CheckReceiptsResponse{}, err
	}

	summary := domain.ReceiptSummary{Total: len(receipts)}
	response := make([]domain.ReceiptResponse, 0, len(receipts))

	for _, r := range receipts {
		switch ClassifyMerchant(r.Merchant) {
		case StateProcessingFailed:
			summary.ProcessingFailed++
		case StateProcessing:
			summary.Processing++
		default:
			summary.Successful++
		}

		response = append(response, domain.ReceiptResponse{
			ID:           r.ID.String(),
			Merchant:     r.Merchant,
			Total:        r.Total,
			PurchaseDate: r.PurchaseDate,
			Summary:      r.Summary,
			ImageURL:     r.ImageURL,
			CreatedAt:    r.CreatedAt,
		})
	}

	return domain.CheckReceiptsResponse{
		Success:  true,
		User:     user,
		Summary:  summary,
		Receipts: response,
	}, nil
}

func (s *receiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	receiptID := uuid.New()
	fileName := fmt.Sprintf("receipt-%s", receiptID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)

	receipt := &entities.Receipt{
		ID:       receiptID,
		UserID:   userUUID,
		Merchant: SentinelProcessing,
		ImageURL: imageURL,
	}

	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.UploadReceiptResponse{}, err
	}

	imageBytes, err := readFileHeader(req.ReceiptImage)
	if err != nil {
		s.markFailed(receipt, fmt.Sprintf("Error reading file: %s", err.Error()))
		return domain.UploadReceiptResponse{}, err
	}

	go s.processReceipt(receipt, imageBytes, req.ReceiptImage.Filename)

	return domain.UploadReceiptResponse{
		ID:       receiptID.String(),
		ImageURL: imageURL,
		State:    StateProcessing,
	}, nil
}

// processReceipt sends the image to the OCR model service and fills in the
// extracted fields, or records the failure in the merchant sentinel.
func (s *receiptService) processReceipt(receipt *entities.Receipt, imageBytes []byte, filename string) {
	if s.ocrModelURL == "" {
		s.markFailed(receipt, "OCR model URL not configured")
		return
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		s.markFailed(receipt, fmt.Sprintf("Error creating form file: %s", err.Error()))
		return
	}

	if _, err = part.Write(imageBytes); err != nil {
		s.markFailed(receipt, fmt.Sprintf("Error writing to form file: %s", err.Error()))
		return
	}

	if err = writer.Close(); err != nil {
		s.markFailed(receipt, fmt.Sprintf("Error closing writer: %s", err.Error()))
		return
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.ocrModelURL, body)
	if err != nil {
		s.markFailed(receipt, fmt.Sprintf("Error creating request: %s", err.Error()))
		return
	}

	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		s.markFailed(receipt, fmt.Sprintf("Error sending request to OCR model: %s", err.Error()))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		s.markFailed(receipt, fmt.Sprintf("OCR model error: %s - %s", resp.Status, string(bodyBytes)))
		return
	}

	var ocrResponse struct {
		Success      bool    `json:"success"`
		Merchant     string  `json:"merchant"`
		Total        float64 `json:"total"`
		PurchaseDate string  `json:"purchase_date"`
		Summary      string  `json:"summary"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&ocrResponse); err != nil {
		s.markFailed(receipt, fmt.Sprintf("Error parsing OCR response: %s", err.Error()))
		return
	}

	if !ocrResponse.Success || ocrResponse.Merchant == "" {
		s.markFailed(receipt, "OCR model couldn't extract merchant from receipt")
		return
	}

	purchaseDate, err := time.Parse("2006-01-02", ocrResponse.PurchaseDate)
	if err != nil {
		purchaseDate = receipt.CreatedAt
	}

	receipt.Merchant = ocrResponse.Merchant
	receipt.Total = ocrResponse.Total
	receipt.PurchaseDate = purchaseDate
	receipt.Summary = ocrResponse.Summary

	if err := s.receiptRepository.UpdateReceipt(context.Background(), receipt); err != nil {
		log.Printf("Error updating receipt %s: %v", receipt.ID, err)
	}
}

func (s *receiptService) markFailed(receipt *entities.Receipt, reason string) {
	receipt.Merchant = fmt.Sprintf("%s: %s", SentinelFailed, reason)
	if err := s.receiptRepository.UpdateReceipt(context.Background(), receipt); err != nil {
		log.Printf("Error updating receipt %s: %v", receipt.ID, err)
		return
	}

	s.notifyFailure(receipt)
}

func (s *receiptService) notifyFailure(receipt *entities.Receipt) {
	profile, err := s.profileRepository.GetByID(context.Background(), receipt.UserID.String())
	if err != nil {
		log.Printf("Error looking up owner of receipt %s: %v", receipt.ID, err)
		return
	}

	appURL := utils.GetConfig("APP_URL")
	body := fmt.Sprintf(
		"<p>We couldn't process the receipt you uploaded. You can review it here: <a href=%q>%s</a></p>",
		appURL, appURL,
	)
	if err := mailing.SendMail(profile.Email, "Receipt processing failed", body); err != nil {
		log.Printf("Error sending failure notice for receipt %s: %v", receipt.ID, err)
	}
}

func (s *receiptService) GetReceiptByID(ctx context.Context, id string, userID string) (domain.ReceiptDetailResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptDetailResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptDetailResponse{}, err
	}

	if receipt.UserID.String() != userID {
		return domain.ReceiptDetailResponse{}, domain.ErrUnauthorizedAccess
	}

	return domain.ReceiptDetailResponse{
		ReceiptResponse: domain.ReceiptResponse{
			ID:           receipt.ID.String(),
			Merchant:     receipt.Merchant,
			Total:        receipt.Total,
			PurchaseDate: receipt.PurchaseDate,
			Summary:      receipt.Summary,
			ImageURL:     receipt.ImageURL,
			CreatedAt:    receipt.CreatedAt,
		},
		State: ClassifyMerchant(receipt.Merchant),
	}, nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, id string, userID string) error {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrReceiptNotFound
		}
		return err
	}

	if receipt.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if receipt.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(receipt.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.receiptRepository.DeleteReceipt(ctx, id)
}

func readFileHeader(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
