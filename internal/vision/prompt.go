package vision

// detectionPrompt asks the model for every card visible in the photo. The
// response contract is a JSON object with a cards array; ParseDetection
// handles the ways models bend that contract.
const detectionPrompt = `Analyze this photo of trading cards or sports cards. The photo may contain a single card or several cards laid out together (up to 10). For EVERY card you can see, extract the following information and return a JSON object in this exact format:

{
  "cards": [
    {
      "playerName": "The name of the player, character, or subject on the card",
      "year": "The year the card was produced or the set date",
      "manufacturer": "The brand/company that made the card (e.g., Topps, Fleer, Panini, Upper Deck, Pokemon Company, Wizards of the Coast, Konami)",
      "cardNumber": "The card number if visible",
      "cardType": "The type of card: 'Sports', 'Trading Card Game (TCG)', or 'Other'",
      "sport": "The sport or game (Baseball, Basketball, Football, Hockey, Soccer, Pokemon, Magic: The Gathering, Yu-Gi-Oh!, or Other)",
      "estimatedCondition": "Estimated condition based on visible wear: 'Mint', 'Near Mint', 'Excellent', 'Very Good', 'Good', 'Fair', or 'Poor'"
    }
  ]
}

Important:
- List the cards in reading order (left to right, top to bottom)
- If this is a Pokemon card, cardType should be "Trading Card Game (TCG)" and sport should be "Pokemon"
- If this is a Magic: The Gathering card, cardType should be "Trading Card Game (TCG)" and sport should be "Magic: The Gathering"
- If this is a Yu-Gi-Oh! card, cardType should be "Trading Card Game (TCG)" and sport should be "Yu-Gi-Oh!"
- If it's a sports card (baseball, basketball, etc.), cardType should be "Sports"
- Look carefully at any text, logos, and branding visible on each card
- For year, extract the copyright year or set year visible on the card
- Return ONLY valid JSON, no additional text or explanation`
