package knowledge

// DefaultContent is the sample knowledge base written when none exists.
const DefaultContent = `Question: What are your business hours?
Answer: We are open Monday to Friday from 9 AM to 6 PM, and Saturday from 10 AM to 4 PM. We are closed on Sundays and public holidays.

Question: How can I contact customer support?
Answer: You can reach our customer support team via email at support@company.com, call us at 1-800-SUPPORT, or use the live chat on our website available 24/7.

Question: What products do you offer?
Answer: We offer a wide range of software solutions including project management tools, customer relationship management (CRM) systems, and data analytics platforms. All products come with a 30-day free trial.

Question: What is your return policy?
Answer: We offer a 60-day money-back guarantee on all our products. If you're not satisfied, contact our support team for a full refund, no questions asked.

Question: Do you offer training for new users?
Answer: Yes! We provide comprehensive onboarding including video tutorials, documentation, and live training sessions. Premium customers also get dedicated account managers.

Question: What payment methods do you accept?
Answer: We accept all major credit cards (Visa, MasterCard, American Express), PayPal, bank transfers, and for enterprise customers, we can arrange invoicing with net-30 terms.

Question: Is my data secure?
Answer: Absolutely. We use bank-level 256-bit encryption, regular security audits, and comply with GDPR, SOC 2, and ISO 27001 standards. Your data is backed up daily.

Question: Can I upgrade or downgrade my plan?
Answer: Yes, you can change your plan at any time. Upgrades take effect immediately, and downgrades will apply at the start of your next billing cycle. No penalties for changes.
`
