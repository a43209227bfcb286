package errors

import (
	"fmt"
	"strings"
)

// MalformedFeedError возникает, когда верхний уровень ответа ленты не является
// массивом постов или объектом с массивом results/data. Ошибка фатальна для прохода.
type MalformedFeedError struct {
	Kind string
	Keys []string
}

func (e *MalformedFeedError) Error() string {
	if len(e.Keys) > 0 {
		return fmt.Sprintf("неизвестный формат ленты: %s с ключами [%s], нет списка results или data",
			e.Kind, strings.Join(e.Keys, ", "))
	}

	return "неизвестный формат ленты: " + e.Kind
}

func (e *MalformedFeedError) Is(target error) bool {
	_, ok := target.(*MalformedFeedError)
	return ok
}

type LinkResolutionError struct {
	URL   string
	Cause error
}

func (e *LinkResolutionError) Error() string {
	return fmt.Sprintf("ошибка при разрешении ссылки %s: %v", e.URL, e.Cause)
}

func (e *LinkResolutionError) Unwrap() error {
	return e.Cause
}

func (e *LinkResolutionError) Is(target error) bool {
	_, ok := target.(*LinkResolutionError)
	return ok
}

type PersistenceError struct {
	Operation string
	Key       string
	Cause     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ошибка хранилища при %s (%s): %v", e.Operation, e.Key, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func (e *PersistenceError) Is(target error) bool {
	_, ok := target.(*PersistenceError)
	return ok
}

type NotificationDeliveryError struct {
	Transport string
	PostID    string
	Cause     error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("ошибка доставки уведомления через %s для поста %s: %v", e.Transport, e.PostID, e.Cause)
}

func (e *NotificationDeliveryError) Unwrap() error {
	return e.Cause
}

func (e *NotificationDeliveryError) Is(target error) bool {
	_, ok := target.(*NotificationDeliveryError)
	return ok
}

type ErrFeedRequest struct {
	URL        string
	StatusCode int
}

func (e *ErrFeedRequest) Error() string {
	return fmt.Sprintf("лента %s вернула статус: %d", e.URL, e.StatusCode)
}

type ErrUnknownDBAccessType struct {
	AccessType string
}

func (e *ErrUnknownDBAccessType) Error() string {
	return fmt.Sprintf("неизвестный тип доступа к базе данных: %s", e.AccessType)
}

type ErrUnknownNotifierType struct {
	Transport string
}

func (e *ErrUnknownNotifierType) Error() string {
	return fmt.Sprintf("неизвестный тип нотификатора: %s", e.Transport)
}

type ErrMissingRequiredField struct {
	FieldName string
}

func (e *ErrMissingRequiredField) Error() string {
	return fmt.Sprintf("отсутствует обязательное поле: %s", e.FieldName)
}

type ErrBuildSQLQuery struct {
	Operation string
	Cause     error
}

func (e *ErrBuildSQLQuery) Error() string {
	return fmt.Sprintf("ошибка при построении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrBuildSQLQuery) Unwrap() error {
	return e.Cause
}

type ErrSQLExecution struct {
	Operation string
	Cause     error
}

func (e *ErrSQLExecution) Error() string {
	return fmt.Sprintf("ошибка при выполнении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrSQLExecution) Unwrap() error {
	return e.Cause
}

type ErrGiftNotFound struct {
	FinalURL string
}

func (e *ErrGiftNotFound) Error() string {
	return "подарок не найден: " + e.FinalURL
}

func (e *ErrGiftNotFound) Is(target error) bool {
	_, ok := target.(*ErrGiftNotFound)
	return ok
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

type ErrScanInProgress struct{}

func (e *ErrScanInProgress) Error() string {
	return "проход сканирования уже выполняется"
}

func (e *ErrScanInProgress) Is(target error) bool {
	_, ok := target.(*ErrScanInProgress)
	return ok
}
