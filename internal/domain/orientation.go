package domain

// Category represents one of the school's six program tracks. The quiz
// classifies a student into exactly one of these.
type Category string

const (
	CategoryEconomico     Category = "ECONOMICO"
	CategoryTurismo       Category = "TURISMO"
	CategoryCostruzioni   Category = "COSTRUZIONI"
	CategoryAgraria       Category = "AGRARIA"
	CategoryElettronica   Category = "ELETTRONICA"
	CategoryProfessionale Category = "PROFESSIONALE"
)

// Categories lists every category in declaration order. Score resolution
// scans this slice front to back, so the order doubles as the tie-break
// policy: on equal scores the earlier category wins.
var Categories = []Category{
	CategoryEconomico,
	CategoryTurismo,
	CategoryCostruzioni,
	CategoryAgraria,
	CategoryElettronica,
	CategoryProfessionale,
}

// CategoryResults maps each category to the human-readable description of
// the recommended program. This description is the externally visible quiz
// result.
var CategoryResults = map[Category]string{
	CategoryEconomico:     "Istituto Tecnico Economico (AFM / Sistemi Informativi Aziendali)",
	CategoryTurismo:       "Istituto Tecnico Economico - Indirizzo Turismo",
	CategoryCostruzioni:   "Istituto Tecnico Tecnologico - Costruzioni, Ambiente e Territorio (CAT)",
	CategoryAgraria:       "Istituto Tecnico Tecnologico - Agraria e Agroalimentare",
	CategoryElettronica:   "Istituto Tecnico Tecnologico - Elettronica ed Automazione",
	CategoryProfessionale: "Istituto Professionale (Enogastronomia o Sanità/Assistenza)",
}

// Option is one selectable answer. Points is a partial mapping; categories
// not present contribute zero.
type Option struct {
	Text   string
	Points map[Category]int
}

// Question is one quiz step with its ordered options.
type Question struct {
	ID      int
	Text    string
	Options []Option
}

// Questions is the fixed orientation question set.
var Questions = []Question{
	{
		ID:   1,
		Text: "Quali materie ti piacciono di più a scuola?",
		Options: []Option{
			{Text: "Matematica, Informatica e numeri", Points: map[Category]int{CategoryEconomico: 3, CategoryElettronica: 2}},
			{Text: "Lingue straniere e Geografia", Points: map[Category]int{CategoryTurismo: 3, CategoryEconomico: 1}},
			{Text: "Tecnologia, Disegno tecnico", Points: map[Category]int{CategoryCostruzioni: 3, CategoryElettronica: 1}},
			{Text: "Scienze, Biologia, Natura", Points: map[Category]int{CategoryAgraria: 3, CategoryProfessionale: 1}},
			{Text: "Preferisco le attività pratiche e laboratoriali", Points: map[Category]int{CategoryProfessionale: 3, CategoryAgraria: 1}},
		},
	},
	{
		ID:   2,
		Text: "Cosa ti piacerebbe fare 'da grande'?",
		Options: []Option{
			{Text: "Lavorare in ufficio, gestire aziende o programmare", Points: map[Category]int{CategoryEconomico: 3, CategoryTurismo: 1}},
			{Text: "Viaggiare, lavorare in hotel o aeroporti", Points: map[Category]int{CategoryTurismo: 3, CategoryEconomico: 1}},
			{Text: "Progettare case, edifici o lavorare in cantiere", Points: map[Category]int{CategoryCostruzioni: 3}},
			{Text: "Costruire circuiti, robotica o impianti elettrici", Points: map[Category]int{CategoryElettronica: 3}},
			{Text: "Cucinare o aiutare le persone (Sanità)", Points: map[Category]int{CategoryProfessionale: 3}},
		},
	},
	{
		ID:   3,
		Text: "Come ti piace passare il tuo tempo libero?",
		Options: []Option{
			{Text: "Al computer, videogiochi o social media", Points: map[Category]int{CategoryEconomico: 2, CategoryElettronica: 2}},
			{Text: "Guardare serie TV in lingua o scoprire posti nuovi", Points: map[Category]int{CategoryTurismo: 3}},
			{Text: "Stare all'aria aperta, natura o animali", Points: map[Category]int{CategoryAgraria: 3}},
			{Text: "Smontare oggetti, capire come funzionano le cose", Points: map[Category]int{CategoryElettronica: 3, CategoryCostruzioni: 2}},
			{Text: "Stare con gli amici, cucinare o fare volontariato", Points: map[Category]int{CategoryProfessionale: 3}},
		},
	},
	{
		ID:   4,
		Text: "Scegli la parola che ti rappresenta di più:",
		Options: []Option{
			{Text: "Organizzazione e Logica", Points: map[Category]int{CategoryEconomico: 3}},
			{Text: "Comunicazione e Apertura", Points: map[Category]int{CategoryTurismo: 3}},
			{Text: "Precisione e Progettazione", Points: map[Category]int{CategoryCostruzioni: 3, CategoryElettronica: 2}},
			{Text: "Natura e Ambiente", Points: map[Category]int{CategoryAgraria: 3}},
			{Text: "Creatività e Servizio", Points: map[Category]int{CategoryProfessionale: 3}},
		},
	},
	{
		ID:   5,
		Text: "In quale ambiente ti vedresti meglio a lavorare?",
		Options: []Option{
			{Text: "Un ufficio moderno e tecnologico", Points: map[Category]int{CategoryEconomico: 3, CategoryElettronica: 2}},
			{Text: "In giro per il mondo o a contatto con turisti", Points: map[Category]int{CategoryTurismo: 3}},
			{Text: "Uno studio di architettura o all'esterno", Points: map[Category]int{CategoryCostruzioni: 3, CategoryAgraria: 2}},
			{Text: "Un laboratorio tecnico o scientifico", Points: map[Category]int{CategoryElettronica: 2, CategoryAgraria: 2}},
			{Text: "Un ristorante, un ospedale o a contatto con la gente", Points: map[Category]int{CategoryProfessionale: 3}},
		},
	},
}

// ScoreState accumulates points per category across a quiz run.
type ScoreState map[Category]int

// NewScoreState returns a ScoreState with every category initialized to zero.
func NewScoreState() ScoreState {
	s := make(ScoreState, len(Categories))
	for _, c := range Categories {
		s[c] = 0
	}
	return s
}

// Add accumulates the points of a selected option. Categories absent from
// the mapping are untouched.
func (s ScoreState) Add(points map[Category]int) {
	for c, p := range points {
		s[c] += p
	}
}

// QuizRun is one quiz attempt: current question index, accumulated scores
// and the terminal flag. After the last answer the run becomes read-only
// and carries the resolved result.
type QuizRun struct {
	ID       string
	Current  int
	Scores   ScoreState
	Finished bool
	Result   string
}

// NewQuizRun creates a run positioned at the first question.
func NewQuizRun(id string) *QuizRun {
	return &QuizRun{
		ID:     id,
		Scores: NewScoreState(),
	}
}

// CurrentQuestion returns the question the run is waiting on. Calling it on
// a finished run returns nil.
func (r *QuizRun) CurrentQuestion() *Question {
	if r.Finished || r.Current >= len(Questions) {
		return nil
	}
	return &Questions[r.Current]
}

// SubmitAnswer applies the selected option of the current question and
// advances the run. On the last question the run turns terminal and the
// result is resolved.
func (r *QuizRun) SubmitAnswer(optionIndex int) error {
	if r.Finished {
		return NewRunFinishedError(r.ID)
	}
	q := &Questions[r.Current]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return NewInvalidOptionError(optionIndex)
	}

	r.Scores.Add(q.Options[optionIndex].Points)

	if r.Current == len(Questions)-1 {
		r.Finished = true
		r.Result = CategoryResults[ResolveCategory(r.Scores)]
	} else {
		r.Current++
	}
	return nil
}

// ResolveCategory returns the category with the strictly greatest score.
// The scan follows declaration order and only a strictly greater score
// replaces the running best, so ties resolve to the earlier category and
// an all-equal state (including all-zero) resolves to the first one.
func ResolveCategory(scores ScoreState) Category {
	best := Categories[0]
	bestScore := -1
	for _, c := range Categories {
		if scores[c] > bestScore {
			bestScore = scores[c]
			best = c
		}
	}
	return best
}
