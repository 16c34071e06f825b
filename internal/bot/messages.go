package bot

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// Main menu options. These are the literal button texts the dialogue
// matches against, so changing one changes the protocol with the user.
const (
	optionSubmitClaim   = "Submit a Claim"
	optionCheckStatus   = "Check Claim Status"
	optionSubmitPayment = "Submit Proof of Payment"
)

// Static outbound texts.
const (
	msgWelcome = "Hi, welcome to the Nepal Finance Bot!\n\n" +
		"📂 *Directory:*\n" +
		"/end - End the conversation at any time\n\n" +
		"Please select one of the options below:\n\n" +
		"📝 *Submit a Claim*\n" +
		"🔍 *Check Claim Status*\n" +
		"📸 *Submit Proof of Payment*\n"

	msgGoodbye = "👋 Thanks for chatting! Feel free to choose an option below to continue whenever you're ready."

	msgInvalidOption = "I didn't understand that. Please select a valid option."

	msgUnknownCommand = "Sorry, I don't recognize that command. Use /start to see the options or /end to finish."

	msgChooseDepartment = "Please choose your department:"
	msgEnterName        = "Please enter your name:"
	msgEnterCategory    = "What are you claiming for?"
	msgEnterAmount      = "Please enter the amount to claim:"
	msgInvalidAmount    = "That doesn't look like a valid amount. Please enter the amount to claim (e.g. 12.50):"
	msgEnterDescription = "Please provide a brief description of the claim you are making:"
	msgUploadReceipt    = "Please upload a picture of the receipt."
	msgImageReceived    = "Image received!"

	msgEnterClaimID = "Please enter the ID of your claim:"

	msgEnterProofName   = "Please enter your name! (eg John_Doe)"
	msgUploadProofImage = "Please upload a picture of your proof of payment!"
	msgImageSubmitted   = "Image submitted!"

	msgRequestValidImage = "Please upload a valid photo (JPG format) for your receipt."
	msgInvalidImage      = "Please upload a valid JPG image."
	msgNonImageFile      = "It looks like you uploaded a non-image file. Please upload a valid photo (JPG format)."
	msgUnsupportedFile   = "Unsupported file type. Please upload a JPG image for your receipt."

	msgRemoteFailure = "An unexpected error occurred. Please try again or contact support if the issue persists."
)

// mainMenuKeyboard builds the three-option main menu reply keyboard.
func mainMenuKeyboard() *models.ReplyKeyboardMarkup {
	return replyKeyboard(
		[]string{optionSubmitClaim, optionCheckStatus, optionSubmitPayment},
		2,
		"Select one of the options below",
	)
}

// departmentKeyboard builds the department selection keyboard from the
// configured department list.
func (b *Bot) departmentKeyboard() *models.ReplyKeyboardMarkup {
	return replyKeyboard(b.cfg.Departments, 2, "Select your department")
}

// replyKeyboard lays options out into rows of the given width. The
// keyboard is one-time and selective so only the prompted user sees it.
func replyKeyboard(options []string, columns int, placeholder string) *models.ReplyKeyboardMarkup {
	var rows [][]models.KeyboardButton
	for i := 0; i < len(options); i += columns {
		end := min(i+columns, len(options))
		var row []models.KeyboardButton
		for _, opt := range options[i:end] {
			row = append(row, models.KeyboardButton{Text: opt})
		}
		rows = append(rows, row)
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard:              rows,
		OneTimeKeyboard:       true,
		InputFieldPlaceholder: placeholder,
		Selective:             true,
	}
}

// removeKeyboard hides any custom keyboard from the previous prompt.
func removeKeyboard() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}

// claimSummary formats the confirmation shown after a claim completes.
func claimSummary(department, name, category, amount, description, receiptID string) string {
	return fmt.Sprintf("🧾 *Your Claim Summary* 🧾\n"+
		"=============================\n"+
		"📌 *Department*: %s\n"+
		"👤 *Name*: %s\n"+
		"💼 *Expense Category*: %s\n"+
		"💰 *Amount*: %s\n"+
		"📝 *Description*: %s\n"+
		"=============================\n"+
		"*Claim ID*: \n`%s`\n"+
		"_(Please copy this ID and keep it!)_\n"+
		"=============================\n",
		department, name, category, amount, description, receiptID)
}

// paymentProofSummary formats the confirmation for a proof-of-payment
// submission.
func paymentProofSummary(name, receiptID string) string {
	return fmt.Sprintf("🧾 *Your Submission Summary* 🧾\n"+
		"=============================\n"+
		"👤 *Name*: %s\n"+
		"=============================\n"+
		"*Submission ID*: \n`%s`\n"+
		"_(Please copy this ID and keep it!)_\n"+
		"=============================\n",
		name, receiptID)
}

// statusDecided formats the reply for a claim an approver has resolved.
func statusDecided(claimID, status string) string {
	return fmt.Sprintf("✅ *Status Update* \n\nYour claim (ID: `%s`) has been *%s*.\n\nThank you for your patience!",
		claimID, status)
}

// statusProcessing formats the reply for a claim still awaiting review.
func statusProcessing(claimID string) string {
	return fmt.Sprintf("⌛ *Processing Update* \n\nThe Claim ID: `%s` is still being processed.\n\nPlease check back later for an update. We appreciate your understanding!",
		claimID)
}

// statusNotFound formats the reply when the supplied claim ID matches
// no ledger row. It echoes the literal input so the user can spot typos.
func statusNotFound(claimID string) string {
	return fmt.Sprintf("⚠️ Oops! It seems like the claim ID '%s' is invalid.\n\n"+
		"Please double-check that you have the correct Claim ID and restart the claim checking process!\n"+
		"To restart the conversation: /start\n\n"+
		"If the Claim ID is invalid after a few attempts, please contact any of the members in the finance team!",
		claimID)
}
