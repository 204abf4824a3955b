package main

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	langParam      = "lang"
	langCookieName = "seductionsync_lang"
)

// Notice is a user-facing message shown as a blocking alert. Its value is
// the English text and doubles as the translation key.
type Notice string

const (
	NoticeLinkRequired Notice = "To join as Partner B, open the link Partner A sent you."
	NoticeNameRequired Notice = "Please enter your name."
	NoticeNameTooLong  Notice = "That name is too long. Please use at most 64 characters."
	NoticeLinkCopied   Notice = "Link copied! Send it to your partner."
)

var supportedLanguages = []language.Tag{language.English, language.Russian}

var languageMatcher = language.NewMatcher(supportedLanguages)

func init() {
	ru := func(key Notice, msg string) {
		_ = message.SetString(language.Russian, string(key), msg)
	}

	ru(NoticeLinkRequired, "Для роли Партнера Б нужна ссылка от Партнера А.")
	ru(NoticeNameRequired, "Введите ваше имя.")
	ru(NoticeNameTooLong, "Слишком длинное имя. Не больше 64 символов.")
	ru(NoticeLinkCopied, "Ссылка скопирована! Отправьте её партнеру.")

	ru("Your shared", "Ваше общее")
	ru("secret adventure.", "тайное приключение.")
	ru("Sync your desires through a private link. No accounts, just your devices.", "Синхронизируйте желания через приватную ссылку. Никаких аккаунтов, только ваши устройства.")
	ru("Start the game", "Начать игру")
	ru("Who starts?", "Кто начинает?")
	ru("I create the session →", "Я создаю сессию →")
	ru("You set up the game and send a secret link to your partner.", "Вы настроите игру и отправите секретную ссылку партнеру.")
	ru("I am joining", "Я присоединяюсь")
	ru("To join, just open the link your partner sent you.", "Чтобы присоединиться, просто откройте ссылку, которую прислал партнер.")
	ru("Profile setup", "Настройка профиля")
	ru("Joining %s", "Присоединение к %s")
	ru("Your name", "Ваше имя")
	ru("For example, Alex", "Например, Алекс")
	ru("Your gender", "Ваш пол")
	ru("Male", "Муж")
	ru("Female", "Жен")
	ru("Non-binary", "НБ")
	ru("Next", "Далее")
	ru("Preferences", "Предпочтения")
	ru("Question %d of %d", "Вопрос %d из %d")
	ru("Yes", "Да")
	ru("Maybe", "Может быть")
	ru("No", "Нет")
	ru("Inventory", "Инвентарь")
	ru("Pick the items you actually have at hand right now.", "Выберите предметы, которые физически доступны вам сейчас.")
	ru("Create sync link", "Создать ссылку синхронизации")
	ru("Finish and start", "Завершить и начать")
	ru("Send the link to your partner", "Отправьте ссылку партнеру")
	ru("Your partner should open it on their phone and complete their own setup.", "Ваш партнер должен открыть её на своем телефоне и пройти свою настройку.")
	ru("Copy link", "Копировать ссылку")
	ru("Once your partner opens the link and finishes setup, you can play on one device or follow the turns on both.", "Как только партнер перейдет по ссылке и закончит настройку, вы сможете начать игру на одном из устройств (или следовать ходам на обоих).")
	ru("I already sent it, start the game (waiting for partner)", "Я уже отправил, начать игру (ожидая партнера)")
	ru("Live Sync", "Синхронизация")
	ru("Level", "Уровень")
	ru("Turn", "Ход")
	ru("Draw a card", "Вытянуть карту")
	ru("Done, next turn", "Готово, следующий ход")
	ru("No card fits right now. Try another level.", "Сейчас нет подходящей карты. Попробуйте другой уровень.")
	ru("Waiting for partner", "Ожидание партнера")
	ru("%d seconds", "%d секунд")
	ru("Spark", "Искра")
	ru("Warmup", "Разогрев")
	ru("Heat", "Жар")
	ru("Partner A", "Партнер А")
	ru("Partner B", "Партнер Б")
	ru("Both", "Оба")

	ru("Blindfold", "Повязка на глаза")
	ru("Feather", "Перо")
	ru("Massage oil", "Массажное масло")
	ru("Candles", "Свечи")
	ru("Silk scarf", "Шелковый шарф")
	ru("Ice cubes", "Кубики льда")
	ru("Playlist", "Плейлист")
	ru("Wine", "Вино")

	ru("Compliments and sweet talk", "Комплименты и нежности")
	ru("Slow massage", "Медленный массаж")
	ru("Private dance", "Приватный танец")
	ru("Role play", "Ролевая игра")
	ru("Sensory play", "Игры с ощущениями")
	ru("Light restraint", "Лёгкая фиксация")

	ru("Take turns naming three things you find irresistible about each other.", "По очереди назовите три вещи, перед которыми вы не можете устоять друг в друге.")
	ru("Describe the moment you first felt drawn to your partner.", "Опишите момент, когда вас впервые потянуло к партнеру.")
	ru("Ask your partner one question you have always wanted to ask.", "Задайте партнеру вопрос, который давно хотели задать.")
	ru("Pour a glass and toast to tonight.", "Наполните бокалы и выпейте за этот вечер.")
	ru("Give your partner a slow shoulder massage.", "Сделайте партнеру медленный массаж плеч.")
	ru("Put on a song and dance just for your partner.", "Включите песню и станцуйте только для партнера.")
	ru("Trace a feather along your partner's arms, then swap.", "Проведите пером по рукам партнера, затем поменяйтесь.")
	ru("Light the candles and dim everything else.", "Зажгите свечи и приглушите остальной свет.")
	ru("Blindfold your partner and guide them only with your voice.", "Завяжите партнеру глаза и направляйте его только голосом.")
	ru("Loosely tie your partner's wrists with the scarf. Either of you can stop at any time.", "Слегка свяжите запястья партнера шарфом. Любой из вас может остановиться в любой момент.")
	ru("Take turns tracing an ice cube wherever your partner allows.", "По очереди проводите кубиком льда там, где позволит партнер.")
	ru("Agree on a scene together and play it out.", "Договоритесь о сцене и разыграйте её.")
}

// parseLanguage maps a user supplied tag onto a supported language.
func parseLanguage(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}

	_, i, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}

	return supportedLanguages[i], true
}

// resolveLanguage picks the language for r: query param, then cookie, then
// Accept-Language, then fallback. The bool reports whether the query param
// should be persisted.
func resolveLanguage(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if v := r.URL.Query().Get(langParam); v != "" {
		if tag, ok := parseLanguage(v); ok {
			return tag, true
		}
	}

	if c, err := r.Cookie(langCookieName); err == nil {
		if tag, ok := parseLanguage(c.Value); ok {
			return tag, false
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, i, conf := languageMatcher.Match(tags...)
			if conf != language.No {
				return supportedLanguages[i], false
			}
		}
	}

	return fallback, false
}

func setLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     langCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func printerFor(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
