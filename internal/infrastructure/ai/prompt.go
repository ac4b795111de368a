// Package ai adaptadores del puerto LLMService sobre las APIs REST de Gemini y Anthropic.
package ai

// consultantInstruction instrucción de sistema del consultor textil (común a ambos proveedores).
const consultantInstruction = `You are Finovex's expert textile consultant.
You help wholesale customers choose threads, fabrics, and materials.
Keep answers concise, professional, and helpful for bulk buyers.
If asked about prices, give estimates but refer them to the catalog.
Tone: Helpful, Sophisticated, Industrial knowledge.`

// maxResponseBytes límite de lectura del cuerpo de respuesta.
const maxResponseBytes = 256 * 1024
