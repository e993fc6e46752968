package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"referent/internal/imagegen"
)

// User-facing messages. The audience reads Russian.
const (
	msgURLRequired  = "Введите URL статьи."
	msgURLInvalid   = "Некорректный URL статьи. Ссылка должна начинаться с http:// или https://."
	msgFetchArticle = "Не удалось загрузить статью по этой ссылке."

	msgNoText         = "Нет текста для обработки."
	msgChooseAction   = "Выберите действие: описание, тезисы или пост для Telegram."
	msgUnavailable    = "Сервис временно недоступен. Попробуйте позже."
	msgGenerateFailed = "Не удалось сгенерировать ответ. Попробуйте позже."

	msgNoTranslateText      = "Нет текста для перевода."
	msgTranslateUnavailable = "Сервис перевода временно недоступен."
	msgTranslateFailed      = "Не удалось выполнить перевод. Попробуйте позже."

	msgNoIllustrateText = "Нет текста для генерации иллюстрации."
	msgImageKeyMissing  = "В .env.local задайте HUGGINGFACE_API_KEY (токен: https://huggingface.co/settings/tokens, право: Inference)."
	msgPromptFailed     = "Не удалось создать промпт для иллюстрации. Попробуйте позже."
	msgIllustrateFailed = "Не удалось сгенерировать иллюстрацию. Попробуйте позже."

	msgImageBadToken  = "Неверный HUGGINGFACE_API_KEY. Создайте токен на https://huggingface.co/settings/tokens с правом «Inference»."
	msgImageNoScope   = "Токен без доступа к Inference API. В настройках токена включите: Inference → Make calls to the serverless Inference API."
	msgImageRateLimit = "Превышен лимит запросов к Hugging Face. Подождите немного и попробуйте снова."
	msgImageLoading   = "Модель ещё загружается. Подождите 1–2 минуты и нажмите «Иллюстрация» снова."
	msgImageGeneric   = "Не удалось сгенерировать изображение. Попробуйте позже."
)

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// imageFailureMessage turns the last provider failure of an exhausted chain
// into a hint the user can act on. Raw provider text is never shown.
func imageFailureMessage(f *imagegen.Failure) string {
	switch {
	case f.StatusCode == http.StatusUnauthorized:
		return msgImageBadToken
	case f.StatusCode == http.StatusForbidden:
		return msgImageNoScope
	case f.StatusCode == http.StatusTooManyRequests:
		return msgImageRateLimit
	case strings.Contains(strings.ToLower(f.Detail), "loading"):
		return msgImageLoading
	default:
		return msgImageGeneric
	}
}
