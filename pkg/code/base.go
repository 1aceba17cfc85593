package code

import "net/http"

// Success codes
var (
	Success = NewSuss(0, lang{
		en: "Success",
		pl: "Sukces",
	})
	SuccessProcessingStarted = NewSuss(2, lang{
		en: "Note processing started",
		pl: "Przetwarzanie notatki rozpoczęte",
	})
)

// Common errors
var (
	ErrorInvalidParams = NewError(10001, lang{
		en: "Invalid request parameters",
		pl: "Nieprawidłowe parametry żądania",
	}).WithStatusCode(http.StatusBadRequest)
	ErrorServerInternal = NewError(10002, lang{
		en: "Internal server error",
		pl: "Wewnętrzny błąd serwera",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorNotFound = NewError(10003, lang{
		en: "Resource not found",
		pl: "Nie znaleziono zasobu",
	}).WithStatusCode(http.StatusNotFound)
	ErrorTooManyRequests = NewError(10004, lang{
		en: "Too many requests",
		pl: "Zbyt wiele żądań",
	}).WithStatusCode(http.StatusTooManyRequests)
)

// Auth errors
var (
	ErrorNotUserAuthToken = NewError(20001, lang{
		en: "Missing authorization token",
		pl: "Brak tokenu autoryzacji",
	}).WithStatusCode(http.StatusUnauthorized)
	ErrorInvalidUserAuthToken = NewError(20002, lang{
		en: "Invalid authorization token",
		pl: "Nieprawidłowy token autoryzacji",
	}).WithStatusCode(http.StatusUnauthorized)
	ErrorUserNotExists = NewError(20003, lang{
		en: "User does not exist",
		pl: "Użytkownik nie istnieje",
	})
	ErrorUserPassword = NewError(20004, lang{
		en: "Incorrect email or password",
		pl: "Nieprawidłowy e-mail lub hasło",
	})
	ErrorUserExists = NewError(20005, lang{
		en: "User already exists",
		pl: "Użytkownik już istnieje",
	})
	ErrorUserRegisterDisabled = NewError(20006, lang{
		en: "Registration is disabled",
		pl: "Rejestracja jest wyłączona",
	})
	ErrorInvalidFileToken = NewError(20007, lang{
		en: "Invalid or expired file token",
		pl: "Nieprawidłowy lub wygasły token pliku",
	}).WithStatusCode(http.StatusUnauthorized)
)

// Note errors
var (
	ErrorNoteNotFound = NewError(30001, lang{
		en: "Note not found",
		pl: "Nie znaleziono notatki",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorNoteCreateFail = NewError(30002, lang{
		en: "Failed to create note",
		pl: "Nie udało się utworzyć notatki",
	})
	ErrorNoteUpdateFail = NewError(30003, lang{
		en: "Failed to update note",
		pl: "Nie udało się zaktualizować notatki",
	})
	ErrorNoteDeleteFail = NewError(30004, lang{
		en: "Failed to delete note",
		pl: "Nie udało się usunąć notatki",
	})
	ErrorProfileFetchFail = NewError(30005, lang{
		en: "Failed to load user profile",
		pl: "Nie udało się wczytać profilu użytkownika",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorProcessBusy = NewError(30006, lang{
		en: "Processing queue is full, try again later",
		pl: "Kolejka przetwarzania jest pełna, spróbuj później",
	}).WithStatusCode(http.StatusServiceUnavailable)
)

// File / storage errors
var (
	ErrorInvalidStorageType = NewError(40001, lang{
		en: "Invalid storage type",
		pl: "Nieprawidłowy typ magazynu",
	})
	ErrorFileUploadFail = NewError(40002, lang{
		en: "File upload failed",
		pl: "Przesyłanie pliku nie powiodło się",
	})
	ErrorFileNotFound = NewError(40003, lang{
		en: "File not found",
		pl: "Nie znaleziono pliku",
	}).WithStatusCode(http.StatusNotFound)
	ErrorFileTooLarge = NewError(40004, lang{
		en: "File exceeds the allowed size",
		pl: "Plik przekracza dozwolony rozmiar",
	})
	ErrorFileExtNotAllowed = NewError(40005, lang{
		en: "File extension is not allowed",
		pl: "Niedozwolone rozszerzenie pliku",
	})
)

// Scrape errors
var (
	ErrorScrapeFail = NewError(50001, lang{
		en: "Failed to fetch web content",
		pl: "Nie udało się pobrać treści strony",
	})
	ErrorScrapeInvalidURL = NewError(50002, lang{
		en: "Invalid URL",
		pl: "Nieprawidłowy adres URL",
	}).WithStatusCode(http.StatusBadRequest)
)
