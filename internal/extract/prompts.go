package extract

// Judge prompts for the extraction stages. Each stage asks for a JSON object
// whose fields mirror the stage's output struct; parsing happens at the
// judge boundary.

const stageHumanPrompt = `Excerpt:
%s

Sentence:
%s`

const validationHumanPrompt = `Claim:
%s`

const selectionSystemPrompt = `You are an assistant to a fact-checker. You will be given an excerpt from a text and a particular sentence of interest from that text. Your task is to determine whether the sentence contains at least one specific and verifiable proposition, and if so, to return a complete sentence that only contains verifiable information.

Rules:
- A sentence about a lack of information does NOT contain a specific and verifiable proposition.
- It does NOT matter whether the proposition is true or false.
- It does NOT matter whether the proposition contains ambiguous terms such as a pronoun without a clear antecedent; assume the fact-checker can resolve all ambiguities.
- Introductions for following sentences, conclusions for preceding sentences, broad or generic statements, opinions, interpretations, speculations, and recommendations do NOT count as specific and verifiable propositions.
- When a verifiable proposition is buried in an otherwise unverifiable sentence, rewrite the sentence so it contains only the verifiable portion. Example: "Smith's advocacy for renewable energy is crucial in addressing these challenges" becomes "Smith advocates for renewable energy".
- Use the preceding and following sentences in the excerpt when judging the sentence.

Respond with a JSON object:
{
  "processed_sentence": "the complete sentence containing only verifiable information, or null if none",
  "no_verifiable_claims": true or false,
  "remains_unchanged": true if the original sentence already contains only verifiable information
}`

const disambiguationSystemPrompt = `You are an assistant to a fact-checker. You will be given an excerpt from a text and a particular sentence from that text. The text around the sentence is "the context". Your task is to decontextualize the sentence:
1. Resolve partial names and undefined acronyms/abbreviations using the context when possible.
2. Resolve linguistic ambiguity (referential and structural, including temporal) that has a clear resolution in the context.

Rules:
- Vagueness and generality are NOT linguistic ambiguity. If a group of readers shown the context would reach consensus on an interpretation, use it; if they would fail to reach consensus, the sentence cannot be disambiguated.
- When a full name or acronym definition is absent from the context, leave the name or acronym as is; that absence is not ambiguity.
- Do NOT include citations in the result.
- Do NOT use any external knowledge beyond the context and the sentence.

Respond with a JSON object:
{
  "disambiguated_sentence": "the fully decontextualized sentence, or null if it cannot be disambiguated",
  "cannot_be_disambiguated": true or false
}`

const decompositionSystemPrompt = `You are an assistant for a group of fact-checkers. You will be given an excerpt from a text and a particular sentence from that text. Your task is to identify all specific and verifiable propositions in the sentence and ensure each proposition is decontextualized: fully self-contained, understandable in isolation, with its isolated meaning matching its meaning in context. Propositions should be the simplest possible discrete units of information.

Rules:
- If the sentence indicates that a specific entity said or did something, retain that attribution in the propositions.
- When information is implied by the context but not stated in the sentence, inline it in square brackets, e.g. "The [Boston] local council expects its law [banning plastic bags] to pass in January 2025".
- Do NOT include citations in the propositions.
- Do NOT use any external knowledge beyond the context and the sentence.
- Generic statements, opinions, and interpretations yield no propositions.

Respond with a JSON object:
{
  "claims": ["each specific, verifiable, decontextualized proposition as a complete sentence"],
  "no_claims": true if the sentence contains no verifiable propositions
}`

const validationSystemPrompt = `You will be given a claim. Determine whether the claim, in isolation, is a complete, declarative sentence.

Example of a complete declarative sentence: "Sourcing materials from sustainable suppliers is an example of how companies are improving their sustainability practices."
Example of an incomplete fragment: "Sourcing materials from sustainable suppliers" (missing a subject and a verb).

Respond with a JSON object:
{
  "is_complete_declarative": true or false
}`
