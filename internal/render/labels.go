package render

import "strings"

// Labels holds every user-visible string the renderer produces.
type Labels struct {
	Locale string

	Region               string
	NoDefects            string
	DefectsFound         string
	Defect               string
	Class                string
	Confidence           string
	Coordinates          string
	Length               string
	Index                string
	NoDefectsPlaceholder string
	Malformed            string
	ErrorPrefix          string
	AnalysisError        string
	Unexpected           string
	ProcessedImage       string
	ReportTitle          string
	ReportButton         string
	ReportCaption        string
	InvalidFileType      string
	EmptyFile            string
}

// English is the default label set.
var English = Labels{
	Locale:               "en",
	Region:               "Region",
	NoDefects:            "No defects",
	DefectsFound:         "Defects found",
	Defect:               "Defect",
	Class:                "Class",
	Confidence:           "Confidence",
	Coordinates:          "Coordinates",
	Length:               "Length along ruler",
	Index:                "Index",
	NoDefectsPlaceholder: "No defects detected",
	Malformed:            "Malformed data received from the server",
	ErrorPrefix:          "Error",
	AnalysisError:        "Analysis failed",
	Unexpected:           "Unexpected failure",
	ProcessedImage:       "View processed image",
	ReportTitle:          "Analysis report",
	ReportButton:         "Download report (Word)",
	ReportCaption:        "The report contains full information about the detected defects",
	InvalidFileType:      "Please choose an image",
	EmptyFile:            "The selected file is empty",
}

// Russian is the label set used by the inspection web page.
var Russian = Labels{
	Locale:               "ru",
	Region:               "Область",
	NoDefects:            "Без дефектов",
	DefectsFound:         "Дефекты обнаружены",
	Defect:               "Дефект",
	Class:                "Класс",
	Confidence:           "Уверенность",
	Coordinates:          "Координаты",
	Length:               "Длина по линейке",
	Index:                "Индекс",
	NoDefectsPlaceholder: "Дефекты не обнаружены",
	Malformed:            "Некорректный формат данных от сервера",
	ErrorPrefix:          "Ошибка",
	AnalysisError:        "Ошибка анализа",
	Unexpected:           "Непредвиденная ошибка",
	ProcessedImage:       "Посмотреть обработанное изображение",
	ReportTitle:          "Отчет по анализу",
	ReportButton:         "Скачать отчет (Word)",
	ReportCaption:        "Отчет содержит полную информацию о выявленных дефектах",
	InvalidFileType:      "Пожалуйста, выберите изображение",
	EmptyFile:            "Выбранный файл пуст",
}

// LabelsFor returns the label set for locale, defaulting to English.
func LabelsFor(locale string) Labels {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "ru", "ru-ru", "russian":
		return Russian
	default:
		return English
	}
}
