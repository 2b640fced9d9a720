package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"sklad-backend/models"
	"sklad-backend/utils"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// Analyst готовит текстовую сводку по позициям с низким остатком.
// Без ключа OPENAI_API_KEY сводка строится детерминированно: дефициты,
// топ-3 по величине и рекомендации для отдела закупок.
type Analyst struct {
	client *openai.Client
}

// NewAnalystFromEnv создает Analyst; внешняя модель подключается
// только при заданном OPENAI_API_KEY
func NewAnalystFromEnv() *Analyst {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return &Analyst{}
	}
	client := openai.NewClient(option.WithAPIKey(key))
	return &Analyst{client: &client}
}

// AnalyzeLowStock возвращает аналитическую сводку по переданным позициям.
// Ошибка внешней модели не фатальна: ответ деградирует до
// детерминированного разбора.
func (a *Analyst) AnalyzeLowStock(ctx context.Context, rows []models.StockView) string {
	if len(rows) == 0 {
		return "Позиций с низким остатком нет, уровни запасов в норме."
	}
	if a.client == nil {
		header := fmt.Sprintf("Выявлено критических дефицитов: %d. Самые значимые позиции ниже.", len(rows))
		return deterministicSummary(rows, header)
	}

	report := make([]string, 0, len(rows))
	for _, r := range rows {
		report = append(report, fmt.Sprintf("- Товар: %s (%s), склад: %s, текущий остаток: %d, минимум: %d",
			r.ItemName, r.ItemCode, r.LocationName, r.CurrentQuantity, r.MinQuantity))
	}
	prompt := fmt.Sprintf(`Проанализируй отчет о низких остатках и дай краткую сводку для отдела закупок: критические дефициты и 2-3 практических рекомендации.

ДАННЫЕ ОТЧЕТА:
%s`, strings.Join(report, "\n"))

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4o,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("Ты профессиональный ассистент по логистике и цепям поставок. Отвечай структурированно и кратко."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil || len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		if err != nil {
			utils.GetLogger().Error("Анализ остатков внешней моделью не выполнен", zap.Error(err))
		}
		header := fmt.Sprintf("Внешняя модель недоступна, сводка построена детерминированно. Дефицитов: %d.", len(rows))
		return deterministicSummary(rows, header)
	}
	return resp.Choices[0].Message.Content
}

type deficitRow struct {
	view    models.StockView
	deficit int
}

// deterministicSummary строит сводку без внешней модели: позиции
// упорядочиваются по величине дефицита, в отчет попадают три наибольших
func deterministicSummary(rows []models.StockView, header string) string {
	deficits := make([]deficitRow, 0, len(rows))
	for _, r := range rows {
		d := r.MinQuantity - r.CurrentQuantity
		if d < 0 {
			d = 0
		}
		deficits = append(deficits, deficitRow{view: r, deficit: d})
	}
	sort.SliceStable(deficits, func(i, j int) bool {
		return deficits[i].deficit > deficits[j].deficit
	})

	top := deficits
	if len(top) > 3 {
		top = top[:3]
	}
	lines := make([]string, 0, len(top))
	for _, d := range top {
		lines = append(lines, fmt.Sprintf("• %s (%s) @ %s: дефицит %d (текущий %d, минимум %d)",
			d.view.ItemName, d.view.ItemCode, d.view.LocationName, d.deficit, d.view.CurrentQuantity, d.view.MinQuantity))
	}

	actions := []string{
		"- Приоритизировать закупку по наибольшим дефицитам в ближайшие 24-48 часов.",
		"- Объединять пополнение по складам, чтобы снизить расходы на обработку.",
		"- Установить точки перезаказа на 10-20% выше минимума, чтобы дефицит не повторялся.",
	}

	return header + "\n\n" + strings.Join(lines, "\n") + "\n\nРекомендуемые действия:\n" + strings.Join(actions, "\n")
}
