package services

import "errors"

// 狀態機與分配相關的錯誤分類，handler 層依此轉換為對應的 API 錯誤碼。
// ErrNoRackAvailable 是正常的業務結果而非系統錯誤，呼叫端應轉為使用者訊息。
var (
	ErrInvalidSpaceState             = errors.New("no valid space state")
	ErrSpaceTransition               = errors.New("invalid space status transition")
	ErrInvalidInstallationState      = errors.New("no valid installation request state")
	ErrInstallationTransition        = errors.New("invalid installation request status transition")
	ErrIncompleteInstallationRequest = errors.New("number of racks and shelves per rack must be non-zero values")
	ErrInstallationConversion        = errors.New("installation request cannot be converted into a space")
	ErrNoRackAvailable               = errors.New("no rack with enough available shelves")
)
