package gemini

import "fmt"

// analysisPromptTemplate frames the task, spells out the closed organ
// vocabulary and severity definitions, and includes two worked examples to
// bias the model toward valid organ names and well-formed JSON. The clinical
// description is injected twice: once as context and restated at the end.
const analysisPromptTemplate = `You are a medical AI assistant. Analyze this clinical description and identify affected organs.

Clinical Description:
%s

CRITICAL: You must respond with ONLY valid JSON, no other text.

Return this exact JSON structure:
{
  "diagnosis": "Brief diagnosis name (2-5 words)",
  "supporting_organs": ["organ1", "organ2"],
  "organ_details": {
    "organ1": "Short specific issue affecting this organ (5-10 words max)",
    "organ2": "Short specific issue affecting this organ (5-10 words max)"
  },
  "explanation": "Short explanation of the condition and affected organs (2-3 sentences)",
  "severity": "low",
  "confidence": 85,
  "recommendations": ["Recommendation 1", "Recommendation 2", "Recommendation 3"]
}

ORGAN RULES:
- supporting_organs must ONLY include organs from this exact list: brain, sinuses, throat, lungs, bronchi, heart, liver, stomach, kidney, intestine, pancreas, bladder
- Use singular forms: "kidney" not "kidneys", "intestine" not "intestines"
- Only include organs that are clearly mentioned or implied in the clinical description
- Be specific: if lungs are mentioned, include "lungs" and possibly "bronchi"

SEVERITY RULES:
- "low": mild symptoms, routine care
- "medium": moderate symptoms, requires monitoring
- "high": severe symptoms, urgent care needed

ORGAN DETAILS RULES:
- For EACH organ in supporting_organs, provide a short, specific issue description
- Keep it brief: 5-10 words maximum per organ
- Be specific: "Inflammation and congestion" not just "Affected"
- Focus on the actual problem: "Reduced oxygen exchange", "Increased heart rate", "Inflammation"

EXAMPLES:
Input: "Patient has chest pain and difficulty breathing"
Output: {
  "diagnosis": "Respiratory Distress",
  "supporting_organs": ["lungs", "heart"],
  "organ_details": {
    "lungs": "Reduced oxygen exchange and breathing difficulty",
    "heart": "Elevated heart rate and potential cardiac stress"
  },
  "explanation": "Chest pain and breathing difficulty suggest potential cardiac or respiratory involvement.",
  "severity": "high",
  "confidence": 80,
  "recommendations": ["Immediate cardiac evaluation", "Chest X-ray", "ECG monitoring"]
}

Input: "Patient reports headache and sinus pressure"
Output: {
  "diagnosis": "Sinusitis",
  "supporting_organs": ["sinuses", "brain"],
  "organ_details": {
    "sinuses": "Inflammation and congestion causing pressure",
    "brain": "Referred pain from sinus inflammation"
  },
  "explanation": "Headache and sinus pressure indicate sinus inflammation affecting the sinuses and potentially causing referred head pain.",
  "severity": "low",
  "confidence": 85,
  "recommendations": ["Nasal decongestants", "Pain relief medication", "Steam inhalation"]
}

Now analyze this clinical description:
%s
`

func buildAnalysisPrompt(description string) string {
	return fmt.Sprintf(analysisPromptTemplate, description, description)
}
