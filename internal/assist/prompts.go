package assist

// prompts for the generative model API
const (
	decomposeSystem = `You are a task planning assistant. Break the task the user gives you into 3-5 concrete, actionable subtasks. Each subtask must be short enough to fit on one line of a todo list. Respond with a JSON array of strings and nothing else.`

	decomposePrompt = `Break this task into smaller subtasks: `

	prioritySystem = `You are a task triage assistant. Judge how urgent the task the user gives you is. Respond with exactly one word: High, Medium, or Low.`

	priorityPrompt = `Suggest a priority for this task: `

	motivateSystem = `You are an upbeat productivity coach. Respond with a single short sentence of encouragement. No preamble, no quotes.`

	motivatePrompt = `I have %d pending tasks on my list. Give me one line of motivation.`
)

// Canned motivation for when the model call fails, and for the odd case
// where it succeeds but returns empty text. Callers display these exactly
// like model output.
const (
	fallbackMotivation = "You've got this! Every task you finish is a step forward."
	emptyMotivation    = "Keep going. Your future self will thank you!"
)
